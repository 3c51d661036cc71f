// Package provider adapts a TLS implementation to cipher-suite resolution.
//
// A Provider reports the suites a TLS stack enables by default and the full
// set it can negotiate. Apply hands a resolved list back to crypto/tls.
package provider

import (
	"slices"

	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
)

// Provider reports the suites a TLS implementation offers.
type Provider interface {
	// DefaultSuites returns the suites enabled by default, in the
	// implementation's preference order.
	DefaultSuites() []string
	// SupportedSuites returns every suite the implementation can use.
	SupportedSuites() ciphersuite.Set
}

// Go reports the suites of the crypto/tls package this binary was built
// with. Under the fips build tag only FIPS-approved suites are reported.
type Go struct{}

// DefaultSuites returns the names of tls.CipherSuites().
func (Go) DefaultSuites() []string {
	out := make([]string, 0, len(catalog.defaults))
	for _, name := range catalog.defaults {
		if fipsApproved(name) {
			out = append(out, name)
		}
	}
	return out
}

// SupportedSuites returns the names of tls.CipherSuites() and
// tls.InsecureCipherSuites().
func (Go) SupportedSuites() ciphersuite.Set {
	s := ciphersuite.NewSet()
	for name := range catalog.byName {
		if fipsApproved(name) {
			s[name] = struct{}{}
		}
	}
	return s
}

// Static is a fixed snapshot of provider state.
type Static struct {
	Default   []string
	Supported ciphersuite.Set
}

// DefaultSuites returns a copy of s.Default.
func (s Static) DefaultSuites() []string {
	return slices.Clone(s.Default)
}

// SupportedSuites returns s.Supported. A nil Supported yields a nil Set,
// which resolution rejects.
func (s Static) SupportedSuites() ciphersuite.Set {
	return s.Supported
}

// Input builds a resolution input from p and the given preferences.
func Input(p Provider, blacklist, whitelist ciphersuite.Set, ordering []string, adjust bool) ciphersuite.Input {
	return ciphersuite.Input{
		Default:                p.DefaultSuites(),
		Supported:              p.SupportedSuites(),
		Blacklist:              blacklist,
		Whitelist:              whitelist,
		Ordering:               ordering,
		AdjustByRecommendation: adjust,
	}
}
