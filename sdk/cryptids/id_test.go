package cryptids

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID: %v", err)
		}
		if len(id) != IDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), IDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(IDAlphabet, r) {
				t.Fatalf("id %q contains %q outside alphabet", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateCustomID(t *testing.T) {
	id, err := GenerateCustomID("ab", 64)
	if err != nil {
		t.Fatalf("GenerateCustomID: %v", err)
	}
	if strings.Trim(id, "ab") != "" || len(id) != 64 {
		t.Errorf("id = %q", id)
	}

	if _, err := GenerateCustomID("a", 4); err == nil {
		t.Error("expected error for single-character alphabet")
	}
	if _, err := GenerateCustomID("abc", 0); err == nil {
		t.Error("expected error for zero size")
	}
}
