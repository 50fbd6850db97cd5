package model

import "encoding/json"

// Inbound event names (client -> gateway).
const (
	EventSendDirectMessage = "send_direct_message"
	EventSendGroupMessage  = "send_group_message"
	EventTypingDirect      = "typing_direct"
	EventTypingGroup       = "typing_group"
)

// Outbound event names (gateway -> client).
const (
	EventReceiveDirectMessage = "receive_direct_message"
	EventMessageSent          = "message_sent"
	EventReceiveGroupMessage  = "receive_group_message"
	EventUserStatusChange     = "user_status_change"
	EventUserTypingDirect     = "user_typing_direct"
	EventUserTypingGroup      = "user_typing_group"
	EventError                = "error"
)

// InboundEvent is the envelope for every client frame. Data is left raw
// so each handler can decode its own payload shape.
type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutboundEvent is the envelope for every frame the gateway writes.
type OutboundEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type SendDirectMessagePayload struct {
	ReceiverID  int64  `json:"receiver_id"`
	MessageText string `json:"message_text"`
}

type SendGroupMessagePayload struct {
	GroupID     int64  `json:"group_id"`
	MessageText string `json:"message_text"`
}

type TypingDirectPayload struct {
	ReceiverID int64 `json:"receiver_id"`
	IsTyping   bool  `json:"is_typing"`
}

type TypingGroupPayload struct {
	GroupID  int64 `json:"group_id"`
	IsTyping bool  `json:"is_typing"`
}

// StatusChange is broadcast to every connected client when a user comes
// online or goes offline.
type StatusChange struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsOnline bool   `json:"is_online"`
}

// TypingDirectNotice is relayed to the target of a direct typing signal.
type TypingDirectNotice struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

// TypingGroupNotice is relayed to online group members other than the sender.
type TypingGroupNotice struct {
	GroupID  int64  `json:"group_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
