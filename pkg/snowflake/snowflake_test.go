package snowflake

import "testing"

func TestGenerateUniqueAndIncreasing(t *testing.T) {
	node, err := NewNode(1)
	if err != nil {
		t.Fatalf("NewNode failed: %v", err)
	}

	seen := make(map[int64]bool)
	prev := int64(-1)
	for i := 0; i < 10000; i++ {
		id := node.Generate()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %d", id)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("IDs not increasing: %d after %d", id, prev)
		}
		prev = id
	}
}

func TestNewNodeBounds(t *testing.T) {
	if _, err := NewNode(-1); err == nil {
		t.Error("NewNode(-1) accepted")
	}
	if _, err := NewNode(1024); err == nil {
		t.Error("NewNode(1024) accepted")
	}
	if _, err := NewNode(1023); err != nil {
		t.Errorf("NewNode(1023) rejected: %v", err)
	}
}
