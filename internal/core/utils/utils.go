package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint identifies a request payload by the sha256 of its JSON form.
func Fingerprint(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint payload: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// MustFingerprint is Fingerprint for payloads known to marshal.
func MustFingerprint(payload any) string {
	fingerprint, err := Fingerprint(payload)
	if err != nil {
		panic(err)
	}
	return fingerprint
}
