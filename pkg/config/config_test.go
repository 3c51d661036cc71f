package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suitepolicy.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"A", []string{"A"}},
		{"A,B", []string{"A", "B"}},
		{" A , B ,C", []string{"A", "B", "C"}},
		{"A,,B", []string{"A", "B"}},
		{"B,A,B", []string{"B", "A", "B"}},
	}

	for _, tt := range tests {
		got := ParseList(tt.in)
		if !slices.Equal(got, tt.want) || (tt.want == nil) != (got == nil) {
			t.Errorf("ParseList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseSet(t *testing.T) {
	if ParseSet("") != nil {
		t.Error("empty string must parse to an absent set")
	}
	s := ParseSet("B, A,B")
	if s.Len() != 2 || !s.Contains("A") || !s.Contains("B") {
		t.Errorf("unexpected set %v", s)
	}
}

func TestFormat(t *testing.T) {
	if got := FormatList([]string{"B", "A"}); got != "B,A" {
		t.Errorf("FormatList = %q", got)
	}
	if got := FormatList(nil); got != "" {
		t.Errorf("FormatList(nil) = %q", got)
	}
	if got := FormatSet(ciphersuite.NewSet("B", "A")); got != "A,B" {
		t.Errorf("FormatSet = %q", got)
	}
	if got := FormatSet(nil); got != "" {
		t.Errorf("FormatSet(nil) = %q", got)
	}

	// Round trip through the string form.
	list := []string{"C", "A", "B"}
	if got := ParseList(FormatList(list)); !slices.Equal(got, list) {
		t.Errorf("round trip = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
tls:
  whitelisted_ciphersuites: TLS_RSA_WITH_AES_128_GCM_SHA256
  blacklisted_ciphersuites: "TLS_RSA_WITH_AES_128_CBC_SHA, TLS_RSA_WITH_AES_256_CBC_SHA"
  ciphersuites_order: ""
  adjust_by_recommendation: false
`)

	p, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.Whitelist.Contains("TLS_RSA_WITH_AES_128_GCM_SHA256") || p.Whitelist.Len() != 1 {
		t.Errorf("whitelist = %v", p.Whitelist)
	}
	if p.Blacklist.Len() != 2 || !p.Blacklist.Contains("TLS_RSA_WITH_AES_256_CBC_SHA") {
		t.Errorf("blacklist = %v", p.Blacklist)
	}
	if p.Ordering != nil {
		t.Errorf("empty ordering must be absent, got %#v", p.Ordering)
	}
	if p.AdjustByRecommendation {
		t.Error("expected adjust disabled")
	}
}

func TestLoadYAMLSequence(t *testing.T) {
	path := writeConfig(t, `
tls:
  ciphersuites_order:
    - C
    - A
`)

	p, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(p.Ordering, []string{"C", "A"}) {
		t.Errorf("ordering = %v", p.Ordering)
	}
	if !p.AdjustByRecommendation {
		t.Error("adjust should default to true")
	}
	if p.Whitelist != nil || p.Blacklist != nil {
		t.Error("unset keys must be absent")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
tls:
  blacklisted_ciphersuites: A
  ciphersuites_order: B
`)
	t.Setenv("SUITEPOLICY_TLS_BLACKLISTED_CIPHERSUITES", "X,Y")
	t.Setenv("SUITEPOLICY_TLS_CIPHERSUITES_ORDER", "")
	t.Setenv("SUITEPOLICY_TLS_ADJUST_BY_RECOMMENDATION", "false")

	p, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if FormatSet(p.Blacklist) != "X,Y" {
		t.Errorf("blacklist = %v", p.Blacklist)
	}
	if p.Ordering != nil {
		t.Errorf("empty env value must clear the ordering, got %v", p.Ordering)
	}
	if p.AdjustByRecommendation {
		t.Error("expected env to disable adjust")
	}
}

func TestLoadFlagsOverride(t *testing.T) {
	path := writeConfig(t, `
tls:
  whitelisted_ciphersuites: A
`)
	t.Setenv("SUITEPOLICY_TLS_WHITELISTED_CIPHERSUITES", "B")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(FlagWhitelist, "", "")
	flags.String(FlagOrdering, "", "")
	flags.Bool(FlagAdjust, true, "")
	if err := flags.Parse([]string{"--whitelist", "C,D", "--adjust=false"}); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if FormatSet(p.Whitelist) != "C,D" {
		t.Errorf("whitelist = %v", p.Whitelist)
	}
	if p.Ordering != nil {
		t.Errorf("unchanged flag must not configure ordering, got %v", p.Ordering)
	}
	if p.AdjustByRecommendation {
		t.Error("expected flag to disable adjust")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		if !qerrors.Is(err, qerrors.ErrConfigRead) {
			t.Errorf("expected ErrConfigRead, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tls: [unclosed"), nil)
		if !qerrors.Is(err, qerrors.ErrConfigRead) {
			t.Errorf("expected ErrConfigRead, got %v", err)
		}
	})

	t.Run("invalid adjust", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tls:\n  adjust_by_recommendation: maybe\n"), nil)
		if !qerrors.Is(err, qerrors.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
		var ce *qerrors.ConfigError
		if !qerrors.As(err, &ce) || ce.Key != "tls.adjust_by_recommendation" {
			t.Errorf("expected ConfigError for adjust key, got %v", err)
		}
	})

	t.Run("invalid list type", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tls:\n  ciphersuites_order:\n    a: b\n"), nil)
		if !qerrors.Is(err, qerrors.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	p := Preferences{
		Whitelist:              ciphersuite.NewSet("W2", "W1"),
		Ordering:               []string{"O2", "O1"},
		AdjustByRecommendation: false,
	}

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := string(data)
	for _, want := range []string{"tls:", "whitelisted_ciphersuites:", "W1,W2", "O2,O1", "adjust_by_recommendation: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "nested", "suitepolicy.yaml")
	if err := p.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if FormatSet(got.Whitelist) != "W1,W2" || !slices.Equal(got.Ordering, p.Ordering) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Blacklist != nil {
		t.Error("absent blacklist must stay absent")
	}
	if got.AdjustByRecommendation {
		t.Error("adjust flag lost in round trip")
	}
}

func TestPreferencesInput(t *testing.T) {
	p := Default()
	p.Blacklist = ciphersuite.NewSet("B")
	src := provider.Static{Default: []string{"A", "B"}, Supported: ciphersuite.NewSet("A", "B")}

	in := p.Input(src)
	if !in.AdjustByRecommendation || !in.Blacklist.Contains("B") || in.Supported.Len() != 2 {
		t.Errorf("unexpected input %+v", in)
	}

	got, err := ciphersuite.ComputeFinalList(in.Default, in.Supported, in.Blacklist, in.Whitelist, in.Ordering, in.AdjustByRecommendation)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"A"}) {
		t.Errorf("got %v", got)
	}
}
