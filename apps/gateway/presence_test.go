package main

import (
	"testing"

	"github.com/mahaj/chat-relay/pkg/model"
)

func TestConnectBroadcastsOnlineStatus(t *testing.T) {
	h, _ := newTestHub()
	alice := join(h, 1, "alice")
	drain(alice)

	bob := join(h, 2, "bob")

	// Everyone registered at broadcast time hears it, the subject included.
	for _, c := range []*Client{alice, bob} {
		f := nextFrame(t, c)
		if f.Event != model.EventUserStatusChange {
			t.Fatalf("user %d got %q, want %q", c.UserID, f.Event, model.EventUserStatusChange)
		}
		var change model.StatusChange
		decodeData(t, f, &change)
		if change.UserID != 2 || change.Username != "bob" || !change.IsOnline {
			t.Errorf("user %d got wrong status change: %+v", c.UserID, change)
		}
	}
}

func TestDisconnectBroadcastsOfflineStatus(t *testing.T) {
	h, _ := newTestHub()
	alice := join(h, 1, "alice")
	bob := join(h, 2, "bob")
	drain(alice)
	drain(bob)

	h.disconnect(bob)

	f := nextFrame(t, alice)
	if f.Event != model.EventUserStatusChange {
		t.Fatalf("got %q, want %q", f.Event, model.EventUserStatusChange)
	}
	var change model.StatusChange
	decodeData(t, f, &change)
	if change.UserID != 2 || change.IsOnline {
		t.Errorf("wrong offline status change: %+v", change)
	}
	assertNoFrames(t, alice)

	if _, ok := h.registry.Lookup(2); ok {
		t.Error("disconnected user still registered")
	}
}

func TestSupersededDisconnectDoesNotGoOffline(t *testing.T) {
	h, st := newTestHub()
	watcher := join(h, 9, "watcher")

	first := join(h, 1, "alice")
	second := join(h, 1, "alice")
	drain(watcher)

	// The stale connection closing must not deregister the new one or
	// announce the user offline.
	h.disconnect(first)

	assertNoFrames(t, watcher)
	got, ok := h.registry.Lookup(1)
	if !ok || got != second {
		t.Error("superseding connection lost after stale disconnect")
	}

	// No offline snapshot write either.
	for _, w := range st.status {
		if w.userID == 1 && !w.online {
			t.Error("offline status persisted for a still-online user")
		}
	}
}

func TestStatusPersistenceFailureIsSwallowed(t *testing.T) {
	h, st := newTestHub()
	st.failStatus = true

	alice := join(h, 1, "alice")

	// Registration and broadcast proceed even when the snapshot write fails.
	if _, ok := h.registry.Lookup(1); !ok {
		t.Fatal("client not registered after status write failure")
	}
	f := nextFrame(t, alice)
	if f.Event != model.EventUserStatusChange {
		t.Errorf("got %q, want %q", f.Event, model.EventUserStatusChange)
	}
}

func TestPresenceStatusWrites(t *testing.T) {
	h, st := newTestHub()
	alice := join(h, 1, "alice")
	h.disconnect(alice)

	want := []statusWrite{{1, true}, {1, false}}
	if len(st.status) != len(want) {
		t.Fatalf("got %d status writes, want %d", len(st.status), len(want))
	}
	for i, w := range want {
		if st.status[i] != w {
			t.Errorf("status write %d = %+v, want %+v", i, st.status[i], w)
		}
	}
}
