// Package fingerprint implements the content hash used for file fingerprints
// and commit identifiers.
//
// It is a polynomial rolling hash and is not collision resistant.
package fingerprint

import "fmt"

// Size is the length of every fingerprint in hex digits.
const Size = 8

// Of returns the 8-hex-digit fingerprint of data.
func Of(data string) string {
	var h uint32
	for _, r := range data {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("%08x", h)
}

// Equal reports whether a and b have the same fingerprint.
func Equal(a, b string) bool {
	return Of(a) == Of(b)
}
