package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mahaj/chat-relay/pkg/model"
)

// handleDirectSend validates, persists, and fans out a direct message.
// Persistence is the commit point: nothing is delivered unless the
// insert succeeded. Live delivery to the receiver is at-most-once; an
// offline receiver gets the message later through the history API.
func (h *Hub) handleDirectSend(c *Client, data json.RawMessage) {
	var p model.SendDirectMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("invalid send_direct_message payload")
		return
	}
	if p.ReceiverID == 0 || p.MessageText == "" {
		c.sendError("receiver_id and message_text are required")
		return
	}

	ctx := context.Background()
	msg, err := h.store.InsertDirectMessage(ctx, c.UserID, p.ReceiverID, p.MessageText)
	if err != nil {
		log.Printf("Failed to persist direct message from user %d: %v", c.UserID, err)
		c.sendError("failed to save message")
		return
	}

	h.publishToFeed(ctx, &model.PersistedMessage{Kind: model.KindDirect, Direct: msg})

	if receiver, ok := h.registry.Lookup(p.ReceiverID); ok {
		receiver.deliver(model.EventReceiveDirectMessage, msg)
	}

	// The sender is always confirmed, whether or not the receiver was
	// online to take live delivery.
	c.deliver(model.EventMessageSent, msg)
}

// handleGroupSend validates, authorizes, persists, and fans out a group
// message to every online member. The sender receives the broadcast like
// any other member; there is no separate confirmation.
func (h *Hub) handleGroupSend(c *Client, data json.RawMessage) {
	var p model.SendGroupMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("invalid send_group_message payload")
		return
	}
	if p.GroupID == 0 || p.MessageText == "" {
		c.sendError("group_id and message_text are required")
		return
	}

	ctx := context.Background()
	member, err := h.store.IsGroupMember(ctx, p.GroupID, c.UserID)
	if err != nil {
		log.Printf("Failed membership check for user %d in group %d: %v", c.UserID, p.GroupID, err)
		c.sendError("failed to verify group membership")
		return
	}
	if !member {
		c.sendError("you are not a member of this group")
		return
	}

	msg, err := h.store.InsertGroupMessage(ctx, p.GroupID, c.UserID, p.MessageText)
	if err != nil {
		log.Printf("Failed to persist group message from user %d: %v", c.UserID, err)
		c.sendError("failed to save message")
		return
	}

	h.publishToFeed(ctx, &model.PersistedMessage{Kind: model.KindGroup, Group: msg})

	// Fresh membership enumeration at send time, never cached.
	memberIDs, err := h.store.GroupMemberIDs(ctx, p.GroupID)
	if err != nil {
		log.Printf("Failed to enumerate group %d members: %v", p.GroupID, err)
		return
	}
	for _, id := range memberIDs {
		if peer, ok := h.registry.Lookup(id); ok {
			peer.deliver(model.EventReceiveGroupMessage, msg)
		}
	}
}
