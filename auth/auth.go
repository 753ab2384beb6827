// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const clinicianIDLength = 10

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateClinicianID creates a client-opaque rater identifier of the form
// clinician_<10 base36 chars>.
func GenerateClinicianID() (string, error) {
	suffix := make([]byte, clinicianIDLength)
	max := big.NewInt(int64(len(base36Chars)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate clinician ID: %w", err)
		}
		suffix[i] = base36Chars[n.Int64()]
	}
	return "clinician_" + string(suffix), nil
}

// CheckAdminPassword compares the supplied password against the configured
// one in constant time. This is the entire auth model: one shared admin
// password, no roles.
func CheckAdminPassword(given, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
