//go:build !fips
// +build !fips

package provider

func fipsApproved(string) bool {
	return true
}

// FIPSMode reports whether the provider was built with the fips tag.
func FIPSMode() bool {
	return false
}
