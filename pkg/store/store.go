// Package store is the durable storage boundary for the chat services:
// message persistence, group membership, and the best-effort online
// status snapshot.
package store

import (
	"context"

	"github.com/mahaj/chat-relay/pkg/model"
)

// Store is what the gateway needs from durable storage. Message inserts
// are the commit point for delivery: no fan-out may happen unless the
// insert succeeded.
type Store interface {
	// InsertDirectMessage persists a direct message and returns the full
	// record with its assigned ID and timestamp, IsRead=false.
	InsertDirectMessage(ctx context.Context, senderID, receiverID int64, text string) (*model.DirectMessage, error)

	// InsertGroupMessage persists a group message and returns the full
	// record with its assigned ID and timestamp.
	InsertGroupMessage(ctx context.Context, groupID, senderID int64, text string) (*model.GroupMessage, error)

	// IsGroupMember reports whether userID currently belongs to groupID.
	IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error)

	// GroupMemberIDs returns the current member IDs of groupID.
	GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error)

	// SetOnlineStatus records a presence snapshot. Best-effort: callers
	// log failures and carry on, the in-memory registry stays the source
	// of truth for who is online.
	SetOnlineStatus(ctx context.Context, userID int64, online bool) error
}
