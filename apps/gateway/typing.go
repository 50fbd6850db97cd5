package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mahaj/chat-relay/pkg/model"
)

// handleTypingDirect relays a typing signal to its target if online.
// Typing signals are never persisted; an offline target means the signal
// is silently dropped, not an error.
func (h *Hub) handleTypingDirect(c *Client, data json.RawMessage) {
	var p model.TypingDirectPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("invalid typing_direct payload")
		return
	}

	receiver, ok := h.registry.Lookup(p.ReceiverID)
	if !ok {
		return
	}
	receiver.deliver(model.EventUserTypingDirect, model.TypingDirectNotice{
		UserID:   c.UserID,
		Username: c.Username,
		IsTyping: p.IsTyping,
	})
}

// handleTypingGroup relays a typing signal to every online group member
// except the sender. A failed membership lookup is treated as an empty
// member set; the sender is never told a typing signal was lost.
func (h *Hub) handleTypingGroup(c *Client, data json.RawMessage) {
	var p model.TypingGroupPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("invalid typing_group payload")
		return
	}

	memberIDs, err := h.store.GroupMemberIDs(context.Background(), p.GroupID)
	if err != nil {
		log.Printf("Failed to enumerate group %d members for typing relay: %v", p.GroupID, err)
		return
	}

	notice := model.TypingGroupNotice{
		GroupID:  p.GroupID,
		UserID:   c.UserID,
		Username: c.Username,
		IsTyping: p.IsTyping,
	}
	for _, id := range memberIDs {
		if id == c.UserID {
			continue
		}
		if peer, ok := h.registry.Lookup(id); ok {
			peer.deliver(model.EventUserTypingGroup, notice)
		}
	}
}
