package hashkey

import "testing"

func TestOfIsDeterministic(t *testing.T) {
	a := Of([]byte("hello world"))
	b := Of([]byte("hello world"))
	if a != b {
		t.Fatalf("expected deterministic hash, got %q and %q", a, b)
	}
}

func TestOfDistinguishesPayloads(t *testing.T) {
	a := Of([]byte("hello"))
	b := Of([]byte("world"))
	if a == b {
		t.Fatal("expected distinct payloads to hash differently")
	}
}

func TestOfEmptyPayload(t *testing.T) {
	if Of(nil) == "" {
		t.Fatal("expected a non-empty key even for an empty payload")
	}
}
