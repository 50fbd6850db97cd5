package model

import "time"

// DirectMessage is the persisted record of a one-to-one message. IsRead
// starts false and is flipped later by the history API, never by the
// gateway.
type DirectMessage struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
	IsRead     bool      `json:"is_read"`
}

// GroupMessage is the persisted record of a group message. Group
// messages carry no per-recipient read state.
type GroupMessage struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	SenderID int64     `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

// Message kinds on the persisted-message feed topic.
const (
	KindDirect = "direct"
	KindGroup  = "group"
)

// PersistedMessage is the Kafka feed record the gateway produces after a
// message has been committed to storage. The indexer consumes it to
// maintain conversation listings.
type PersistedMessage struct {
	Kind   string         `json:"kind"`
	Direct *DirectMessage `json:"direct,omitempty"`
	Group  *GroupMessage  `json:"group,omitempty"`
}
