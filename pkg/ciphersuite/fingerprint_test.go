package ciphersuite

import "testing"

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"A", "B"})

	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a != Fingerprint([]string{"A", "B"}) {
		t.Error("fingerprint is not deterministic")
	}

	tests := []struct {
		name   string
		suites []string
	}{
		{"reordered", []string{"B", "A"}},
		{"concatenated", []string{"AB"}},
		{"split differently", []string{"A", "", "B"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		if Fingerprint(tt.suites) == a {
			t.Errorf("%s: fingerprint collides with [A B]", tt.name)
		}
	}

	if Fingerprint(nil) != Fingerprint([]string{}) {
		t.Error("nil and empty lists should share a fingerprint")
	}
}
