package main

import (
	"context"
	"log"

	"github.com/mahaj/chat-relay/pkg/model"
)

// announcePresence broadcasts a status change to every registered
// client, the subject included, and records the snapshot in the store.
// The registry is the source of truth for who is online; the store write
// is best-effort and failures are only logged.
func (h *Hub) announcePresence(userID int64, username string, online bool) {
	change := model.StatusChange{
		UserID:   userID,
		Username: username,
		IsOnline: online,
	}

	for _, peer := range h.registry.Snapshot() {
		peer.deliver(model.EventUserStatusChange, change)
	}

	if err := h.store.SetOnlineStatus(context.Background(), userID, online); err != nil {
		log.Printf("Failed to persist online status for user %d: %v", userID, err)
	}
}
