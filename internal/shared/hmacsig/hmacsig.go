// Package hmacsig signs cookie payloads with HMAC-SHA256.
package hmacsig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Seal returns payload + "." + base64url(hmac(payload)).
func Seal(secret []byte, payload string) string {
	return payload + "." + sign(secret, payload)
}

// Open verifies a sealed value and returns its payload.
func Open(secret []byte, sealed string) (string, bool) {
	i := strings.LastIndexByte(sealed, '.')
	if i <= 0 || i == len(sealed)-1 {
		return "", false
	}
	payload, sig := sealed[:i], sealed[i+1:]
	if !hmac.Equal([]byte(sign(secret, payload)), []byte(sig)) {
		return "", false
	}
	return payload, true
}

// Sign returns base64url(hmac(payload)) on its own.
func Sign(secret []byte, payload string) string {
	return sign(secret, payload)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
