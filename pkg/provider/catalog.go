package provider

import "crypto/tls"

type suiteCatalog struct {
	byName   map[string]*tls.CipherSuite
	byID     map[uint16]*tls.CipherSuite
	defaults []string
}

var catalog = newSuiteCatalog()

func newSuiteCatalog() suiteCatalog {
	c := suiteCatalog{
		byName: map[string]*tls.CipherSuite{},
		byID:   map[uint16]*tls.CipherSuite{},
	}
	for _, cs := range tls.CipherSuites() {
		c.byName[cs.Name] = cs
		c.byID[cs.ID] = cs
		c.defaults = append(c.defaults, cs.Name)
	}
	for _, cs := range tls.InsecureCipherSuites() {
		c.byName[cs.Name] = cs
		c.byID[cs.ID] = cs
	}
	return c
}

// Lookup returns the IANA ID of a suite name known to crypto/tls.
func Lookup(name string) (uint16, bool) {
	cs, ok := catalog.byName[name]
	if !ok {
		return 0, false
	}
	return cs.ID, true
}

// Name returns the suite name for id, or the "0x..." form crypto/tls uses
// for unknown IDs.
func Name(id uint16) string {
	return tls.CipherSuiteName(id)
}

// Insecure reports whether crypto/tls classifies the named suite as
// insecure. Unknown names report false.
func Insecure(name string) bool {
	cs, ok := catalog.byName[name]
	return ok && cs.Insecure
}
