package ciphersuite

import (
	"strings"

	"github.com/pzverkov/suitepolicy/internal/constants"
)

// IsRecommended reports whether name passes the static security baseline
// of draft-saintandre-xmpp-tls-02, 4.3:
//
//   - MUST NOT negotiate NULL or anonymous suites
//   - MUST NOT negotiate RC4 suites
//   - MUST NOT negotiate export-level encryption (40 or 56 bit)
//   - MUST NOT negotiate suites under 128 bits of security, such as 3DES
//
// The check is a case-sensitive substring match on the suite name, so it
// works for any provider's catalog without an enumerated table.
func IsRecommended(name string) bool {
	for _, marker := range constants.BannedMarkers {
		if strings.Contains(name, marker) {
			return false
		}
	}
	return true
}

// FilterByRecommendation returns the entries of list that pass
// IsRecommended, in their original relative order. The input is not modified.
func FilterByRecommendation(list []string) []string {
	out := make([]string, 0, len(list))
	for _, suite := range list {
		if IsRecommended(suite) {
			out = append(out, suite)
		}
	}
	return out
}
