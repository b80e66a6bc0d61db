package pipeline

import (
	"sort"
	"strings"
	"testing"
)

func TestNewJobID_FormatAndOrder(t *testing.T) {
	ids := make([]string, 200)
	seen := make(map[string]bool)
	for i := range ids {
		ids[i] = NewJobID()
		if len(ids[i]) != 26 {
			t.Fatalf("expected 26 characters, got %d (%s)", len(ids[i]), ids[i])
		}
		for _, c := range ids[i] {
			if !strings.ContainsRune(crockford, c) {
				t.Fatalf("unexpected character %q in %s", c, ids[i])
			}
		}
		if seen[ids[i]] {
			t.Fatalf("duplicate id %s", ids[i])
		}
		seen[ids[i]] = true
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("expected ids to sort in creation order")
	}
}

func TestEncodeID(t *testing.T) {
	var zero [16]byte
	if got := encodeID(zero); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %s", got)
	}
	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	if got := encodeID(ones); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected 7ZZZ..., got %s", got)
	}
}
