package main

import (
	"testing"

	"github.com/mahaj/chat-relay/pkg/model"
)

func TestDispatchMalformedFrame(t *testing.T) {
	h, _ := newTestHub()
	alice := join(h, 1, "alice")
	drain(alice)

	h.dispatch(alice, []byte("{not json"))

	f := nextFrame(t, alice)
	if f.Event != model.EventError {
		t.Errorf("got %q, want error event", f.Event)
	}
	// The connection stays open and registered.
	if _, ok := h.registry.Lookup(1); !ok {
		t.Error("client deregistered after malformed frame")
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	h, _ := newTestHub()
	alice := join(h, 1, "alice")
	drain(alice)

	h.dispatch(alice, inbound(t, "delete_account", struct{}{}))

	f := nextFrame(t, alice)
	if f.Event != model.EventError {
		t.Errorf("got %q, want error event", f.Event)
	}
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	h, _ := newTestHub()
	c := join(h, 1, "alice")

	filler := []byte("x")
	for i := 0; i < cap(c.send); i++ {
		c.trySend(filler)
	}

	if c.deliver(model.EventError, model.ErrorPayload{Message: "overflow"}) {
		t.Error("deliver reported success with a full buffer")
	}
}

func TestDeliverAfterShutdownIsNoop(t *testing.T) {
	h, _ := newTestHub()
	c := join(h, 1, "alice")
	h.disconnect(c)

	// Must not panic on the closed channel and must report failure.
	if c.deliver(model.EventMessageSent, model.DirectMessage{}) {
		t.Error("deliver reported success after shutdown")
	}
}

func TestDisconnectShutdownIsIdempotent(t *testing.T) {
	h, _ := newTestHub()
	c := join(h, 1, "alice")

	h.disconnect(c)
	h.disconnect(c) // second call must be a guarded no-op
}
