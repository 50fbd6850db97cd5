package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mahaj/chat-relay/pkg/auth"
	"github.com/mahaj/chat-relay/pkg/db"
	"github.com/mahaj/chat-relay/pkg/model"
	"github.com/mahaj/chat-relay/pkg/store"
)

// DirectHistoryHandler returns the direct conversation between the
// authenticated user and ?with=<user_id>, newest first.
func DirectHistoryHandler(session *db.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(auth.UserKey).(*auth.Claims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		otherID, err := strconv.ParseInt(r.URL.Query().Get("with"), 10, 64)
		if err != nil || otherID == 0 {
			http.Error(w, "with parameter is required", http.StatusBadRequest)
			return
		}

		key := store.ConversationKey(claims.UserID, otherID)
		iter := session.Query(
			`SELECT id, sender_id, receiver_id, text, sent_at, is_read FROM direct_messages WHERE conversation_key = ?`,
			key,
		).Iter()

		var messages []model.DirectMessage
		var m model.DirectMessage
		for iter.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.SentAt, &m.IsRead) {
			messages = append(messages, m)
		}

		if err := iter.Close(); err != nil {
			log.Printf("Failed to iterate direct messages: %v", err)
			http.Error(w, "Failed to retrieve history", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}

// GroupHistoryHandler returns the message history of ?group_id=<id>,
// newest first. Only current members may read it.
func GroupHistoryHandler(session *db.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(auth.UserKey).(*auth.Claims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
		if err != nil || groupID == 0 {
			http.Error(w, "group_id parameter is required", http.StatusBadRequest)
			return
		}

		var memberID int64
		if err := session.Query(
			`SELECT user_id FROM group_members WHERE group_id = ? AND user_id = ?`,
			groupID, claims.UserID,
		).Scan(&memberID); err != nil {
			http.Error(w, "Not a member of this group", http.StatusForbidden)
			return
		}

		iter := session.Query(
			`SELECT id, group_id, sender_id, text, sent_at FROM group_messages WHERE group_id = ?`,
			groupID,
		).Iter()

		var messages []model.GroupMessage
		var m model.GroupMessage
		for iter.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Text, &m.SentAt) {
			messages = append(messages, m)
		}

		if err := iter.Close(); err != nil {
			log.Printf("Failed to iterate group messages: %v", err)
			http.Error(w, "Failed to retrieve history", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}
