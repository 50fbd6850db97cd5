package main

import (
	"log"
	"os"
	"strings"

	"github.com/mahaj/chat-relay/pkg/db"
)

func main() {
	scyllaHostsStr := os.Getenv("SCYLLA_HOSTS")
	if scyllaHostsStr == "" {
		scyllaHostsStr = "localhost:9042"
	}
	hosts := strings.Split(scyllaHostsStr, ",")

	if err := db.EnsureKeyspace(hosts, "chat"); err != nil {
		log.Fatalf("Failed to create keyspace: %v", err)
	}

	session, err := db.NewSession(hosts, "chat")
	if err != nil {
		log.Fatalf("Failed to connect to ScyllaDB chat keyspace: %v", err)
	}
	defer session.Close()

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS direct_messages (
			conversation_key text,
			id bigint,
			sender_id bigint,
			receiver_id bigint,
			text text,
			sent_at timestamp,
			is_read boolean,
			PRIMARY KEY (conversation_key, id)
		) WITH CLUSTERING ORDER BY (id DESC)`,

		`CREATE TABLE IF NOT EXISTS group_messages (
			group_id bigint,
			id bigint,
			sender_id bigint,
			text text,
			sent_at timestamp,
			PRIMARY KEY (group_id, id)
		) WITH CLUSTERING ORDER BY (id DESC)`,

		`CREATE TABLE IF NOT EXISTS group_members (
			group_id bigint,
			user_id bigint,
			PRIMARY KEY (group_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS user_conversations (
			user_id bigint,
			other_user_id bigint,
			last_updated timestamp,
			PRIMARY KEY (user_id, other_user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS conversation_counters (
			user_id bigint,
			other_user_id bigint,
			unread_count counter,
			PRIMARY KEY (user_id, other_user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS group_activity (
			group_id bigint,
			last_updated timestamp,
			last_sender_id bigint,
			PRIMARY KEY (group_id)
		)`,
	}

	for _, stmt := range ddl {
		if err := session.Query(stmt).Exec(); err != nil {
			log.Fatalf("Failed to run DDL: %v", err)
		}
	}

	log.Println("All tables created successfully")
}
