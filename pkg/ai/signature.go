package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex sha256 HMAC of payload under secret. The analysis
// service signs its completion callbacks this way over the raw body.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC reports whether signatureHex matches payload under secret.
// An empty secret never verifies, so an unset AI_WEBHOOK_SECRET rejects
// every callback instead of accepting unsigned ones.
func VerifyHMAC(secret string, payload []byte, signatureHex string) bool {
	if secret == "" || signatureHex == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, payload)), []byte(signatureHex))
}
