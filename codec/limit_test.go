package codec

import (
	"strings"
	"testing"
)

func TestLimitDecode(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 8}

	if v, err := c.Decode([]byte("short")); err != nil || v != "short" {
		t.Fatalf("Decode under limit: %q err=%v", v, err)
	}
	if _, err := c.Decode([]byte(strings.Repeat("x", 9))); err == nil {
		t.Fatalf("Decode over limit should fail")
	}

	// Encode is never limited.
	b, err := c.Encode(strings.Repeat("y", 100))
	if err != nil || len(b) != 100 {
		t.Fatalf("Encode: len=%d err=%v", len(b), err)
	}

	// MaxDecode <= 0 disables limiting.
	open := Limit[string]{Inner: String{}}
	if _, err := open.Decode([]byte(strings.Repeat("z", 1000))); err != nil {
		t.Fatalf("unlimited Decode: %v", err)
	}
}
