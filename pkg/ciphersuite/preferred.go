package ciphersuite

import (
	"slices"

	"github.com/pzverkov/suitepolicy/internal/constants"
)

// preferredSuites is the fallback priority order used when recommendation
// adjustment is requested without a configured ordering.
//
// draft-saintandre-xmpp-tls-02, 4.3: "XMPP implementations SHOULD prefer
// ciphersuites that use algorithms with at least 256 bits of security."
//
//   - ephemeral Diffie-Hellman, 256 bit
//   - ephemeral Diffie-Hellman, 128 bit
//   - static RSA, 256 bit then 128 bit
var preferredSuites = []string{
	constants.TLSDHERSAWithAES256GCMSHA384,
	constants.TLSECDHERSAWithAES256GCMSHA384,
	"TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA384",
	"TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA384",
	"TLS_ECDH_ECDSA_WITH_AES_256_CBC_SHA384",
	"TLS_ECDH_RSA_WITH_AES_256_CBC_SHA384",
	"TLS_DHE_RSA_WITH_AES_256_CBC_SHA256",
	"TLS_DHE_DSS_WITH_AES_256_CBC_SHA256",
	"TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA",
	"TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA",
	"TLS_ECDH_ECDSA_WITH_AES_256_CBC_SHA",
	"TLS_ECDH_RSA_WITH_AES_256_CBC_SHA",
	"TLS_DHE_RSA_WITH_AES_256_CBC_SHA",
	"TLS_DHE_DSS_WITH_AES_256_CBC_SHA",

	constants.TLSDHERSAWithAES128GCMSHA256,
	constants.TLSECDHERSAWithAES128GCMSHA256,
	"TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256",
	"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256",
	"TLS_ECDH_ECDSA_WITH_AES_128_CBC_SHA256",
	"TLS_ECDH_RSA_WITH_AES_128_CBC_SHA256",
	"TLS_DHE_RSA_WITH_AES_128_CBC_SHA256",
	"TLS_DHE_DSS_WITH_AES_128_CBC_SHA256",
	"TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA",
	"TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
	"TLS_ECDH_ECDSA_WITH_AES_128_CBC_SHA",
	"TLS_ECDH_RSA_WITH_AES_128_CBC_SHA",
	"TLS_DHE_RSA_WITH_AES_128_CBC_SHA",
	"TLS_DHE_DSS_WITH_AES_128_CBC_SHA",

	"TLS_RSA_WITH_AES_256_CBC_SHA256",
	"TLS_RSA_WITH_AES_256_CBC_SHA",

	"TLS_RSA_WITH_AES_128_CBC_SHA256",
	"TLS_RSA_WITH_AES_128_CBC_SHA",
}

// PreferredSuites returns a copy of the static preferred order.
func PreferredSuites() []string {
	return slices.Clone(preferredSuites)
}

// ResolveOrdering returns the static preferred order when ordering is nil
// or empty, and ordering itself otherwise.
func ResolveOrdering(ordering []string) []string {
	if len(ordering) == 0 {
		return PreferredSuites()
	}
	return ordering
}
