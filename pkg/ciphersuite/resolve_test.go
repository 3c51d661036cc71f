package ciphersuite

import (
	"slices"
	"testing"

	"github.com/pzverkov/suitepolicy/internal/constants"
	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
)

func TestComputeFinalListScenarios(t *testing.T) {
	tests := []struct {
		name      string
		def       []string
		supported Set
		blacklist Set
		whitelist Set
		ordering  []string
		adjust    bool
		want      []string
	}{
		{
			name:      "recommendation drops rc4",
			def:       []string{"TLS_RSA_WITH_AES_128_CBC_SHA", "SSL_RSA_WITH_RC4_128_SHA"},
			supported: NewSet("TLS_RSA_WITH_AES_128_CBC_SHA", "SSL_RSA_WITH_RC4_128_SHA"),
			adjust:    true,
			want:      []string{"TLS_RSA_WITH_AES_128_CBC_SHA"},
		},
		{
			name:      "whitelist appends supported suite",
			def:       []string{"A", "B"},
			supported: NewSet("A", "B", "C"),
			whitelist: NewSet("C"),
			want:      []string{"A", "B", "C"},
		},
		{
			name:      "blacklist removes after whitelist",
			def:       []string{"A", "B"},
			supported: NewSet("A", "B", "C"),
			whitelist: NewSet("C"),
			blacklist: NewSet("B"),
			want:      []string{"A", "C"},
		},
		{
			name:      "ordering moves named suites to front",
			def:       []string{"A", "B", "C"},
			supported: NewSet("A", "B", "C"),
			ordering:  []string{"C", "A"},
			want:      []string{"C", "A", "B"},
		},
		{
			name:      "unsupported default is stripped",
			def:       []string{"A"},
			supported: NewSet("B"),
			want:      []string{},
		},
		{
			name:      "whitelist skips unsupported suite",
			def:       []string{"A"},
			supported: NewSet("A"),
			whitelist: NewSet("Z"),
			want:      []string{"A"},
		},
		{
			name:      "whitelist does not duplicate",
			def:       []string{"A", "B"},
			supported: NewSet("A", "B"),
			whitelist: NewSet("A"),
			want:      []string{"A", "B"},
		},
		{
			name:      "whitelist bypasses recommendation filter",
			def:       []string{"TLS_RSA_WITH_AES_128_CBC_SHA"},
			supported: NewSet("TLS_RSA_WITH_AES_128_CBC_SHA", "TLS_RSA_WITH_NULL_SHA"),
			whitelist: NewSet("TLS_RSA_WITH_NULL_SHA"),
			adjust:    true,
			want:      []string{"TLS_RSA_WITH_AES_128_CBC_SHA", "TLS_RSA_WITH_NULL_SHA"},
		},
		{
			name:      "whitelist injected in sorted order",
			def:       nil,
			supported: NewSet("X", "M", "B"),
			whitelist: NewSet("X", "M", "B"),
			want:      []string{"B", "M", "X"},
		},
		{
			name:      "blacklist removes every duplicate",
			def:       []string{"A", "B", "A"},
			supported: NewSet("A", "B"),
			blacklist: NewSet("A"),
			want:      []string{"B"},
		},
		{
			name:      "blacklist dominates whitelist",
			def:       []string{"A"},
			supported: NewSet("A", "C"),
			whitelist: NewSet("C"),
			blacklist: NewSet("C"),
			want:      []string{"A"},
		},
		{
			name:      "ordering ignores names not in list",
			def:       []string{"A", "B"},
			supported: NewSet("A", "B", "Q"),
			ordering:  []string{"Q", "B"},
			want:      []string{"B", "A"},
		},
		{
			name:      "ordering moves only first duplicate",
			def:       []string{"A", "B", "A"},
			supported: NewSet("A", "B"),
			ordering:  []string{"A"},
			want:      []string{"A", "B", "A"},
		},
		{
			name:      "empty ordering without adjust keeps order",
			def:       []string{"B", "A"},
			supported: NewSet("A", "B"),
			ordering:  []string{},
			want:      []string{"B", "A"},
		},
		{
			name:      "empty ordering with adjust falls back to preferred",
			def:       []string{"TLS_RSA_WITH_AES_128_CBC_SHA", constants.TLSECDHERSAWithAES256GCMSHA384},
			supported: NewSet("TLS_RSA_WITH_AES_128_CBC_SHA", constants.TLSECDHERSAWithAES256GCMSHA384),
			ordering:  []string{},
			adjust:    true,
			want:      []string{constants.TLSECDHERSAWithAES256GCMSHA384, "TLS_RSA_WITH_AES_128_CBC_SHA"},
		},
		{
			name:      "configured ordering replaces preferred under adjust",
			def:       []string{constants.TLSECDHERSAWithAES256GCMSHA384, "TLS_RSA_WITH_AES_128_CBC_SHA"},
			supported: NewSet("TLS_RSA_WITH_AES_128_CBC_SHA", constants.TLSECDHERSAWithAES256GCMSHA384),
			ordering:  []string{"TLS_RSA_WITH_AES_128_CBC_SHA"},
			adjust:    true,
			want:      []string{"TLS_RSA_WITH_AES_128_CBC_SHA", constants.TLSECDHERSAWithAES256GCMSHA384},
		},
		{
			name:      "empty supported set yields empty result",
			def:       []string{"A"},
			supported: Set{},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFinalList(tt.def, tt.supported, tt.blacklist, tt.whitelist, tt.ordering, tt.adjust)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("result must never be nil")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeFinalListNilSupported(t *testing.T) {
	got, err := ComputeFinalList([]string{"A"}, nil, nil, nil, nil, false)
	if err == nil {
		t.Fatal("expected error for nil supported set")
	}
	if got != nil {
		t.Errorf("expected no partial result, got %v", got)
	}
	if !qerrors.Is(err, qerrors.ErrNilSupportedSet) {
		t.Errorf("expected ErrNilSupportedSet, got %v", err)
	}
	var pe *qerrors.PolicyError
	if !qerrors.As(err, &pe) || pe.Op != "resolve" {
		t.Errorf("expected PolicyError with op resolve, got %v", err)
	}
}

func TestComputeFinalListDoesNotMutateInputs(t *testing.T) {
	def := []string{"B", "A", "C"}
	ordering := []string{"C"}
	defCopy := slices.Clone(def)
	orderingCopy := slices.Clone(ordering)

	_, err := ComputeFinalList(def, NewSet("A", "B", "C"), NewSet("A"), nil, ordering, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(def, defCopy) || !slices.Equal(ordering, orderingCopy) {
		t.Errorf("inputs were mutated: %v %v", def, ordering)
	}
}

func TestComputeFinalListProperties(t *testing.T) {
	def := []string{
		"TLS_RSA_WITH_AES_128_CBC_SHA",
		"TLS_RSA_WITH_RC4_128_SHA",
		"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		"TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256",
		"TLS_RSA_WITH_3DES_EDE_CBC_SHA",
	}
	supported := NewSet(append(def, "TLS_AES_128_GCM_SHA256")...)
	blacklist := NewSet("TLS_RSA_WITH_AES_128_CBC_SHA")
	whitelist := NewSet("TLS_AES_128_GCM_SHA256", "TLS_RSA_WITH_RC4_128_SHA", "NOT_SUPPORTED")
	ordering := []string{"TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256", "TLS_AES_128_GCM_SHA256"}

	for _, adjust := range []bool{false, true} {
		got, err := ComputeFinalList(def, supported, blacklist, whitelist, ordering, adjust)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, s := range got {
			if !supported.Contains(s) {
				t.Errorf("adjust=%v: %s not in supported set", adjust, s)
			}
			if blacklist.Contains(s) {
				t.Errorf("adjust=%v: blacklisted %s in result", adjust, s)
			}
		}

		// Ordering prefix: ordering items present in the result appear
		// first, in ordering order.
		var prefix []string
		for _, o := range ordering {
			if slices.Contains(got, o) {
				prefix = append(prefix, o)
			}
		}
		if !slices.Equal(got[:len(prefix)], prefix) {
			t.Errorf("adjust=%v: result %v does not start with %v", adjust, got, prefix)
		}

		if !slices.Contains(got, "TLS_RSA_WITH_RC4_128_SHA") {
			t.Errorf("adjust=%v: supported whitelist entry missing", adjust)
		}
	}
}

func TestFallbackOrderSubstitution(t *testing.T) {
	def := []string{
		"TLS_RSA_WITH_AES_128_CBC_SHA",
		"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		"TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384",
	}
	supported := NewSet(def...)

	withNil, err := ComputeFinalList(def, supported, nil, nil, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	withPreferred, err := ComputeFinalList(def, supported, nil, nil, PreferredSuites(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(withNil, withPreferred) {
		t.Errorf("nil ordering %v differs from preferred ordering %v", withNil, withPreferred)
	}

	want := []string{
		"TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384",
		"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		"TLS_RSA_WITH_AES_128_CBC_SHA",
	}
	if !slices.Equal(withNil, want) {
		t.Errorf("got %v, want %v", withNil, want)
	}
}

func TestExplain(t *testing.T) {
	res, err := Explain(Input{
		Default:                []string{"A_NULL_SHA", "B", "C", "D"},
		Supported:              NewSet("B", "C", "W"),
		Blacklist:              NewSet("C"),
		Whitelist:              NewSet("W"),
		Ordering:               []string{"W"},
		AdjustByRecommendation: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(res.Suites, []string{"W", "B"}) {
		t.Errorf("suites = %v", res.Suites)
	}
	if !slices.Equal(res.Injected, []string{"W"}) {
		t.Errorf("injected = %v", res.Injected)
	}

	tests := []struct {
		reason Reason
		want   []string
	}{
		{ReasonRecommendation, []string{"A_NULL_SHA"}},
		{ReasonBlacklist, []string{"C"}},
		{ReasonUnsupported, []string{"D"}},
	}
	for _, tt := range tests {
		if got := res.RemovedBy(tt.reason); !slices.Equal(got, tt.want) {
			t.Errorf("RemovedBy(%s) = %v, want %v", tt.reason, got, tt.want)
		}
	}
	if !slices.Equal(res.Ordering, []string{"W"}) {
		t.Errorf("ordering = %v", res.Ordering)
	}
}

func TestExplainOrderingRecord(t *testing.T) {
	res, err := Explain(Input{Default: []string{"A"}, Supported: NewSet("A")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Ordering != nil {
		t.Errorf("expected no ordering recorded, got %v", res.Ordering)
	}

	res, err = Explain(Input{Default: []string{"A"}, Supported: NewSet("A"), AdjustByRecommendation: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Ordering) != len(PreferredSuites()) {
		t.Errorf("expected preferred ordering recorded, got %d entries", len(res.Ordering))
	}
}
