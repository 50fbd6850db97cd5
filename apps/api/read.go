package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mahaj/chat-relay/pkg/auth"
	"github.com/mahaj/chat-relay/pkg/db"
	"github.com/mahaj/chat-relay/pkg/store"
)

type ReadRequest struct {
	OtherUserID int64 `json:"other_user_id"`
}

// ReadHandler marks a direct conversation as read: it flips is_read on
// the caller's received messages and resets the unread counter. This is
// the only place read state is ever mutated; the gateway never touches it.
func ReadHandler(session *db.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		claims, ok := r.Context().Value(auth.UserKey).(*auth.Claims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req ReadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OtherUserID == 0 {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		key := store.ConversationKey(claims.UserID, req.OtherUserID)
		iter := session.Query(
			`SELECT id, receiver_id, is_read FROM direct_messages WHERE conversation_key = ?`, key,
		).Iter()

		var unread []int64
		var id, receiverID int64
		var isRead bool
		for iter.Scan(&id, &receiverID, &isRead) {
			if receiverID == claims.UserID && !isRead {
				unread = append(unread, id)
			}
		}
		if err := iter.Close(); err != nil {
			http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
			return
		}

		for _, id := range unread {
			if err := session.Query(
				`UPDATE direct_messages SET is_read = true WHERE conversation_key = ? AND id = ?`, key, id,
			).Exec(); err != nil {
				log.Printf("Failed to mark message %d read: %v", id, err)
			}
		}

		// Delete the row from conversation_counters to reset count to 0.
		// In ScyllaDB counters, deletion is the way to reset.
		query := `DELETE FROM conversation_counters WHERE user_id = ? AND other_user_id = ?`
		if err := session.Query(query, claims.UserID, req.OtherUserID).Exec(); err != nil {
			http.Error(w, "Failed to reset unread count", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
