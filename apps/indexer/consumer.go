package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mahaj/chat-relay/pkg/db"
	"github.com/mahaj/chat-relay/pkg/model"
)

// Consumer reads the persisted-message feed and maintains the
// conversation index: per-user conversation listings, unread counters,
// and group activity timestamps. It only ever observes messages the
// gateway has already committed to storage.
type Consumer struct {
	reader *kafka.Reader
	db     *db.Session
}

func NewConsumer(brokers []string, topic string, groupID string, session *db.Session) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{reader: r, db: session}
}

func (c *Consumer) Consume(ctx context.Context) {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v. Retrying in 1s...", err)
			time.Sleep(1 * time.Second)
			continue
		}

		var pm model.PersistedMessage
		if err := json.Unmarshal(m.Value, &pm); err != nil {
			log.Printf("Failed to unmarshal feed record: %v", err)
			continue
		}

		switch pm.Kind {
		case model.KindDirect:
			if pm.Direct != nil {
				c.indexDirect(pm.Direct)
			}
		case model.KindGroup:
			if pm.Group != nil {
				c.indexGroup(pm.Group)
			}
		default:
			log.Printf("Skipping feed record of unknown kind %q", pm.Kind)
		}
	}
}

// indexDirect updates both participants' conversation rows and bumps the
// receiver's unread counter.
func (c *Consumer) indexDirect(msg *model.DirectMessage) {
	q := `INSERT INTO user_conversations (user_id, other_user_id, last_updated) VALUES (?, ?, ?)`
	if err := c.db.Query(q, msg.SenderID, msg.ReceiverID, msg.SentAt).Exec(); err != nil {
		log.Printf("Failed to update conversation for user %d: %v", msg.SenderID, err)
	}
	if err := c.db.Query(q, msg.ReceiverID, msg.SenderID, msg.SentAt).Exec(); err != nil {
		log.Printf("Failed to update conversation for user %d: %v", msg.ReceiverID, err)
	}

	qCounter := `UPDATE conversation_counters SET unread_count = unread_count + 1 WHERE user_id = ? AND other_user_id = ?`
	if err := c.db.Query(qCounter, msg.ReceiverID, msg.SenderID).Exec(); err != nil {
		log.Printf("Failed to increment unread count for user %d: %v", msg.ReceiverID, err)
	}
}

// indexGroup records the latest activity timestamp for the group.
func (c *Consumer) indexGroup(msg *model.GroupMessage) {
	q := `INSERT INTO group_activity (group_id, last_updated, last_sender_id) VALUES (?, ?, ?)`
	if err := c.db.Query(q, msg.GroupID, msg.SentAt, msg.SenderID).Exec(); err != nil {
		log.Printf("Failed to update activity for group %d: %v", msg.GroupID, err)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
