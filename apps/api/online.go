package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mahaj/chat-relay/pkg/store"
)

// OnlineUsersHandler returns the IDs in the online-status snapshot set.
// The snapshot is best-effort (gateway writes are fire-and-forget), so
// it can briefly lag the gateways' in-memory registries.
func OnlineUsersHandler(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := rdb.SMembers(r.Context(), store.OnlineUsersKey).Result()
		if err != nil {
			log.Printf("Failed to fetch online users: %v", err)
			http.Error(w, "Failed to fetch online users", http.StatusInternalServerError)
			return
		}

		userIDs := make([]int64, 0, len(members))
		for _, m := range members {
			id, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				continue
			}
			userIDs = append(userIDs, id)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userIDs)
	}
}
