package ciphersuite

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// fingerprintDomain separates policy fingerprints from other SHA3 uses.
const fingerprintDomain = "suitepolicy-fingerprint-v1"

// Fingerprint returns a hex SHA3-256 digest identifying an ordered suite
// list. Two lists share a fingerprint only if they hold the same names in
// the same order, which makes it suitable for logging and for comparing an
// effective policy across hosts or restarts.
//
// Each name is length-prefixed (4-byte big-endian) so that no two distinct
// lists encode to the same byte stream.
func Fingerprint(suites []string) string {
	h := sha3.New256()
	var lenBuf [4]byte

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(fingerprintDomain)))
	h.Write(lenBuf[:])
	h.Write([]byte(fingerprintDomain))

	for _, s := range suites {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}
