package provider

import (
	"crypto/tls"
	"fmt"

	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
)

// IDs converts suite names to IANA IDs, preserving order.
func IDs(suites []string) ([]uint16, error) {
	ids := make([]uint16, 0, len(suites))
	for _, name := range suites {
		id, ok := Lookup(name)
		if !ok {
			return nil, qerrors.NewPolicyError("apply", fmt.Errorf("%w: %q", qerrors.ErrUnknownCipherSuite, name))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Apply sets cfg.CipherSuites to suites. An empty list is rejected rather
// than leaving crypto/tls to fall back to its own defaults. MinVersion is
// raised to TLS 1.2 when unset.
//
// crypto/tls ignores the order of CipherSuites since Go 1.17 and never lets
// TLS 1.3 suites be configured, so only the membership of TLS 1.0-1.2
// suites takes effect.
func Apply(cfg *tls.Config, suites []string) error {
	if len(suites) == 0 {
		return qerrors.NewPolicyError("apply", qerrors.ErrEmptySuiteList)
	}
	ids, err := IDs(suites)
	if err != nil {
		return err
	}
	cfg.CipherSuites = ids
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	return nil
}
