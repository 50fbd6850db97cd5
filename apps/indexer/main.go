package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/mahaj/chat-relay/pkg/db"
)

func main() {
	kafkaBrokersStr := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokersStr == "" {
		kafkaBrokersStr = "localhost:19092"
	}
	brokers := strings.Split(kafkaBrokersStr, ",")

	scyllaHostsStr := os.Getenv("SCYLLA_HOSTS")
	if scyllaHostsStr == "" {
		scyllaHostsStr = "localhost:9042"
	}
	scyllaHosts := strings.Split(scyllaHostsStr, ",")

	topic := "chat-messages"
	groupID := "indexer-service-group"
	keyspace := "chat"

	session, err := db.NewSession(scyllaHosts, keyspace)
	if err != nil {
		log.Fatalf("Failed to connect to ScyllaDB chat keyspace: %v", err)
	}
	defer session.Close()

	consumer := NewConsumer(brokers, topic, groupID, session)
	defer consumer.Close()

	log.Println("Starting indexer consumer...")
	consumer.Consume(context.Background())
}
