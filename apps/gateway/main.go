package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/mahaj/chat-relay/pkg/db"
	"github.com/mahaj/chat-relay/pkg/snowflake"
	"github.com/mahaj/chat-relay/pkg/store"
)

func main() {
	f, err := os.OpenFile("gateway.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	defer f.Close()
	log.SetOutput(f)

	kafkaBrokersStr := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokersStr == "" {
		kafkaBrokersStr = "localhost:19092"
	}
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	scyllaHostsStr := os.Getenv("SCYLLA_HOSTS")
	if scyllaHostsStr == "" {
		scyllaHostsStr = "localhost:9042"
	}
	scyllaHosts := strings.Split(scyllaHostsStr, ",")

	listenAddr := os.Getenv("GATEWAY_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	session, err := db.NewSession(scyllaHosts, "chat")
	if err != nil {
		log.Fatalf("Failed to connect to ScyllaDB: %v", err)
	}
	defer session.Close()

	ids, err := snowflake.NewNodeFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize snowflake node: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	producer := &kafka.Writer{
		Addr:     kafka.TCP(kafkaBrokers...),
		Topic:    "chat-messages",
		Balancer: &kafka.LeastBytes{},
	}
	defer producer.Close()

	hub := NewHub(store.NewScyllaStore(session, ids, rdb), producer)

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})

	log.Printf("Gateway Service Starting on %s...", listenAddr)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatal(err)
	}
}
