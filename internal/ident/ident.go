// Package ident generates and validates the serialized identifiers carried
// by QR codes. The QR payload is the bare serial number: encoding places
// nothing else into the code, so decoding is the identity function on the
// text the camera pipeline yields.
package ident

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Identifier prefixes.
const (
	SerialPrefix   = "SN-"
	TrackingPrefix = "SH-"
)

// suffixLength is the number of random characters after the prefix.
const suffixLength = 9

// charset is uppercased base 36. No checksum; collisions are statistically
// negligible for this domain and caught by the store's unique constraints.
const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSerial returns a fresh item serial number (SN- + 9 base-36 chars).
func GenerateSerial() (string, error) {
	s, err := randomSuffix(suffixLength)
	if err != nil {
		return "", fmt.Errorf("generating serial number: %w", err)
	}
	return SerialPrefix + s, nil
}

// GenerateTrackingCode returns a fresh shipment tracking code
// (SH- + 9 base-36 chars).
func GenerateTrackingCode() (string, error) {
	s, err := randomSuffix(suffixLength)
	if err != nil {
		return "", fmt.Errorf("generating tracking code: %w", err)
	}
	return TrackingPrefix + s, nil
}

// ValidSerial reports whether s matches the generated serial format.
// Client-supplied serials are allowed to be free text, so this is a format
// check for generated identifiers, not an input gate.
func ValidSerial(s string) bool {
	return validCode(s, SerialPrefix)
}

// ValidTrackingCode reports whether s matches the tracking code format.
func ValidTrackingCode(s string) bool {
	return validCode(s, TrackingPrefix)
}

func validCode(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	suffix := s[len(prefix):]
	if len(suffix) != suffixLength {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		if !strings.ContainsRune(charset, rune(suffix[i])) {
			return false
		}
	}
	return true
}

func randomSuffix(length int) (string, error) {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
