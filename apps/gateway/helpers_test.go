package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mahaj/chat-relay/pkg/model"
)

type statusWrite struct {
	userID int64
	online bool
}

// fakeStore is an in-memory Store for hub tests. Failure flags simulate
// an unavailable backend per operation.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	direct  []*model.DirectMessage
	group   []*model.GroupMessage
	members map[int64][]int64
	status  []statusWrite

	failDirectInsert bool
	failGroupInsert  bool
	failMembership   bool
	failStatus       bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{members: make(map[int64][]int64)}
}

func (s *fakeStore) InsertDirectMessage(ctx context.Context, senderID, receiverID int64, text string) (*model.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDirectInsert {
		return nil, errors.New("store unavailable")
	}
	s.nextID++
	msg := &model.DirectMessage{
		ID:         s.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		SentAt:     time.Now().UTC(),
		IsRead:     false,
	}
	s.direct = append(s.direct, msg)
	return msg, nil
}

func (s *fakeStore) InsertGroupMessage(ctx context.Context, groupID, senderID int64, text string) (*model.GroupMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGroupInsert {
		return nil, errors.New("store unavailable")
	}
	s.nextID++
	msg := &model.GroupMessage{
		ID:       s.nextID,
		GroupID:  groupID,
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now().UTC(),
	}
	s.group = append(s.group, msg)
	return msg, nil
}

func (s *fakeStore) IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMembership {
		return false, errors.New("store unavailable")
	}
	for _, id := range s.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMembership {
		return nil, errors.New("store unavailable")
	}
	return append([]int64(nil), s.members[groupID]...), nil
}

func (s *fakeStore) SetOnlineStatus(ctx context.Context, userID int64, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = append(s.status, statusWrite{userID: userID, online: online})
	if s.failStatus {
		return errors.New("redis unavailable")
	}
	return nil
}

func (s *fakeStore) directCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.direct)
}

func (s *fakeStore) groupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.group)
}

func newTestHub() (*Hub, *fakeStore) {
	st := newFakeStore()
	return NewHub(st, nil), st
}

// join connects a pumpless client: frames queue in c.send where tests
// can inspect them.
func join(h *Hub, userID int64, username string) *Client {
	c := newClient(h, nil, userID, username)
	h.connect(c)
	return c
}

// inbound builds a client frame for dispatch.
func inbound(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	frame, err := json.Marshal(model.InboundEvent{Event: event, Data: data})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return frame
}

type outFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// nextFrame pops the next queued frame for the client, failing the test
// if none is queued.
func nextFrame(t *testing.T, c *Client) outFrame {
	t.Helper()
	select {
	case raw := <-c.send:
		var f outFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("unmarshal frame %q: %v", raw, err)
		}
		return f
	default:
		t.Fatal("no frame queued")
	}
	return outFrame{}
}

func assertNoFrames(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected frame queued: %s", raw)
	default:
	}
}

// drain discards everything queued for the client, typically the
// presence frames generated while assembling a test scenario.
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func decodeData(t *testing.T, f outFrame, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(f.Data, v); err != nil {
		t.Fatalf("unmarshal %s data: %v", f.Event, err)
	}
}
