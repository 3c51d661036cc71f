// Package constants defines cipher-suite names, policy markers and
// configuration keys shared across the suitepolicy packages.
package constants

// Project identification
const (
	// ProjectName is used as the default tracer and logger name
	ProjectName = "suitepolicy"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "SUITEPOLICY"

	// MetricsNamespace is prepended to exported metric names
	MetricsNamespace = "suitepolicy"
)

// Recommended suites from draft-saintandre-xmpp-tls-02, 4.3 Ciphersuites
const (
	TLSDHERSAWithAES256GCMSHA384   = "TLS_DHE_RSA_WITH_AES_256_GCM_SHA384"
	TLSECDHERSAWithAES256GCMSHA384 = "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384"
	TLSDHERSAWithAES128GCMSHA256   = "TLS_DHE_RSA_WITH_AES_128_GCM_SHA256"
	TLSECDHERSAWithAES128GCMSHA256 = "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256"
)

// Name fragments that mark a suite as not recommended. Matching is a
// case-sensitive substring test so it works against any provider catalog.
const (
	// MarkerNull matches NULL encryption suites
	MarkerNull = "NULL"

	// MarkerAnonymous matches unauthenticated key exchange
	MarkerAnonymous = "anon"

	// MarkerRC4 matches RC4 stream cipher suites
	MarkerRC4 = "RC4"

	// MarkerExport matches export-grade (40/56 bit) suites
	MarkerExport = "EXPORT"

	// MarkerTripleDES matches 3DES suites (less than 128 bits of security)
	MarkerTripleDES = "3DES"
)

// BannedMarkers lists every marker checked by the recommendation filter.
var BannedMarkers = [...]string{
	MarkerNull,
	MarkerAnonymous,
	MarkerRC4,
	MarkerExport,
	MarkerTripleDES,
}

// Configuration keys
const (
	// ConfigKeyWhitelist holds comma-separated suites to add when supported
	ConfigKeyWhitelist = "tls.whitelisted_ciphersuites"

	// ConfigKeyBlacklist holds comma-separated suites that are always removed
	ConfigKeyBlacklist = "tls.blacklisted_ciphersuites"

	// ConfigKeyOrdering holds the comma-separated priority order
	ConfigKeyOrdering = "tls.ciphersuites_order"

	// ConfigKeyAdjust enables the recommendation filter and fallback ordering
	ConfigKeyAdjust = "tls.adjust_by_recommendation"

	// ListSeparator separates suite names in configuration strings
	ListSeparator = ","
)
