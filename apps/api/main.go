package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mahaj/chat-relay/pkg/db"
)

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Allow all for dev, or specific origin
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if r.Method == "OPTIONS" {
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	scyllaHostsStr := os.Getenv("SCYLLA_HOSTS")
	if scyllaHostsStr == "" {
		scyllaHostsStr = "localhost:9042"
	}
	scyllaHosts := strings.Split(scyllaHostsStr, ",")
	keyspace := "chat"

	session, err := db.NewSession(scyllaHosts, keyspace)
	if err != nil {
		log.Fatalf("Failed to connect to ScyllaDB: %v", err)
	}
	defer session.Close()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	listenAddr := os.Getenv("API_ADDR")
	if listenAddr == "" {
		listenAddr = ":8081"
	}

	log.Printf("API Service Starting on %s...", listenAddr)

	// Public endpoint
	http.Handle("/login", CORSMiddleware(http.HandlerFunc(LoginHandler)))

	// Protected endpoints
	http.Handle("/history/direct", CORSMiddleware(AuthMiddleware(DirectHistoryHandler(session))))
	http.Handle("/history/group", CORSMiddleware(AuthMiddleware(GroupHistoryHandler(session))))
	http.Handle("/users/online", CORSMiddleware(AuthMiddleware(OnlineUsersHandler(rdb))))
	http.Handle("/conversations", CORSMiddleware(AuthMiddleware(ConversationsHandler(session))))
	http.Handle("/conversations/read", CORSMiddleware(AuthMiddleware(ReadHandler(session))))

	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatal(err)
	}
}
