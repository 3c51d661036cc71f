//go:build fips
// +build fips

package provider

import "strings"

// fipsApproved reports whether a suite is FIPS 140-3 approved. Only AES-GCM
// suites qualify; ChaCha20-Poly1305 and CBC suites are excluded.
func fipsApproved(name string) bool {
	return strings.Contains(name, "_AES_128_GCM_") || strings.Contains(name, "_AES_256_GCM_")
}

// FIPSMode reports whether the provider was built with the fips tag.
func FIPSMode() bool {
	return true
}
