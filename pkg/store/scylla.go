package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"github.com/mahaj/chat-relay/pkg/db"
	"github.com/mahaj/chat-relay/pkg/model"
	"github.com/mahaj/chat-relay/pkg/snowflake"
)

// OnlineUsersKey is the Redis set holding the online-status snapshot.
const OnlineUsersKey = "users:online"

// ConversationKey returns the partition key shared by both directions
// of a direct conversation (lower user ID first).
func ConversationKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("dm:%d:%d", a, b)
}

// ScyllaStore implements Store on ScyllaDB for messages and membership,
// with the online-status snapshot kept in a Redis set.
type ScyllaStore struct {
	session *db.Session
	ids     *snowflake.Node
	redis   *redis.Client
}

func NewScyllaStore(session *db.Session, ids *snowflake.Node, rdb *redis.Client) *ScyllaStore {
	return &ScyllaStore{session: session, ids: ids, redis: rdb}
}

func (s *ScyllaStore) InsertDirectMessage(ctx context.Context, senderID, receiverID int64, text string) (*model.DirectMessage, error) {
	msg := &model.DirectMessage{
		ID:         s.ids.Generate(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		SentAt:     time.Now().UTC(),
		IsRead:     false,
	}

	query := `INSERT INTO direct_messages (conversation_key, id, sender_id, receiver_id, text, sent_at, is_read) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if err := s.session.Query(query,
		ConversationKey(senderID, receiverID), msg.ID, msg.SenderID, msg.ReceiverID, msg.Text, msg.SentAt, msg.IsRead,
	).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("insert direct message: %w", err)
	}

	return msg, nil
}

func (s *ScyllaStore) InsertGroupMessage(ctx context.Context, groupID, senderID int64, text string) (*model.GroupMessage, error) {
	msg := &model.GroupMessage{
		ID:       s.ids.Generate(),
		GroupID:  groupID,
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now().UTC(),
	}

	query := `INSERT INTO group_messages (group_id, id, sender_id, text, sent_at) VALUES (?, ?, ?, ?, ?)`
	if err := s.session.Query(query,
		msg.GroupID, msg.ID, msg.SenderID, msg.Text, msg.SentAt,
	).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("insert group message: %w", err)
	}

	return msg, nil
}

func (s *ScyllaStore) IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var found int64
	err := s.session.Query(
		`SELECT user_id FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	).WithContext(ctx).Scan(&found)

	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("membership lookup: %w", err)
	}
	return true, nil
}

func (s *ScyllaStore) GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	iter := s.session.Query(
		`SELECT user_id FROM group_members WHERE group_id = ?`, groupID,
	).WithContext(ctx).Iter()

	var members []int64
	var userID int64
	for iter.Scan(&userID) {
		members = append(members, userID)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("member enumeration: %w", err)
	}
	return members, nil
}

func (s *ScyllaStore) SetOnlineStatus(ctx context.Context, userID int64, online bool) error {
	member := strconv.FormatInt(userID, 10)
	if online {
		return s.redis.SAdd(ctx, OnlineUsersKey, member).Err()
	}
	return s.redis.SRem(ctx, OnlineUsersKey, member).Err()
}
