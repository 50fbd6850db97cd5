package store

import "testing"

func TestConversationKeyIsDirectionless(t *testing.T) {
	if ConversationKey(1, 2) != ConversationKey(2, 1) {
		t.Error("conversation key depends on argument order")
	}
	if got := ConversationKey(2, 1); got != "dm:1:2" {
		t.Errorf("ConversationKey(2, 1) = %q, want %q", got, "dm:1:2")
	}
}

func TestConversationKeySelf(t *testing.T) {
	if got := ConversationKey(5, 5); got != "dm:5:5" {
		t.Errorf("ConversationKey(5, 5) = %q, want %q", got, "dm:5:5")
	}
}
