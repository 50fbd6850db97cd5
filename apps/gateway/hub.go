package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/mahaj/chat-relay/pkg/model"
	"github.com/mahaj/chat-relay/pkg/store"
)

// feedProducer is the subset of kafka.Writer the hub uses to publish
// persisted messages for the indexer.
type feedProducer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Hub wires a gateway instance together: the connection registry, the
// durable store, and the post-persist message feed.
type Hub struct {
	registry *Registry
	store    store.Store
	feed     feedProducer
}

// NewHub creates a hub. feed may be nil, in which case persisted
// messages are not published to Kafka.
func NewHub(st store.Store, feed feedProducer) *Hub {
	return &Hub{
		registry: NewRegistry(),
		store:    st,
		feed:     feed,
	}
}

// connect registers an authenticated client and announces it online.
func (h *Hub) connect(c *Client) {
	h.registry.Register(c.UserID, c)
	log.Printf("Client registered: user %d (%s)", c.UserID, c.Username)
	h.announcePresence(c.UserID, c.Username, true)
}

// disconnect runs the teardown sequence for a closed connection. The
// registry ignores the deregistration if a newer connection for the same
// user has superseded this one; in that case the user is still online
// and no offline transition is announced.
func (h *Hub) disconnect(c *Client) {
	if h.registry.Deregister(c.UserID, c) {
		log.Printf("Client unregistered: user %d (%s)", c.UserID, c.Username)
		h.announcePresence(c.UserID, c.Username, false)
	}
	c.shutdown()
}

// dispatch routes one inbound frame to its handler. Called from the
// connection's read pump, so handlers for a single connection never run
// concurrently.
func (h *Hub) dispatch(c *Client, frame []byte) {
	var evt model.InboundEvent
	if err := json.Unmarshal(frame, &evt); err != nil {
		c.sendError("invalid event frame")
		return
	}

	switch evt.Event {
	case model.EventSendDirectMessage:
		h.handleDirectSend(c, evt.Data)
	case model.EventSendGroupMessage:
		h.handleGroupSend(c, evt.Data)
	case model.EventTypingDirect:
		h.handleTypingDirect(c, evt.Data)
	case model.EventTypingGroup:
		h.handleTypingGroup(c, evt.Data)
	default:
		c.sendError("unknown event: " + evt.Event)
	}
}

// publishToFeed puts a persisted message on the Kafka feed for the
// indexer. Strictly post-commit and best-effort: a broker failure never
// affects delivery or the sender's confirmation.
func (h *Hub) publishToFeed(ctx context.Context, pm *model.PersistedMessage) {
	if h.feed == nil {
		return
	}
	value, err := json.Marshal(pm)
	if err != nil {
		log.Printf("Failed to marshal feed record: %v", err)
		return
	}
	if err := h.feed.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
		log.Printf("Failed to publish message to feed: %v", err)
	}
}
