package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first prefixLen characters of SHA256(input).
// Used to correlate log lines on an IP or device hash without writing
// the raw value.
func ShortHash(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}

// SaltedSHA256 hashes input with a salt prefix. Used for derived keys
// where the plain hash of a low-entropy value would be reversible by
// enumeration (IP addresses).
func SaltedSHA256(salt, input string) string {
	return SHA256Hex(salt + input)
}
