package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPayment checks the signature the gateway hands to the client after a
// successful checkout. The signed payload is "<gatewayOrderID>|<paymentID>",
// the signature a hex-encoded HMAC-SHA256 over it. Missing inputs count as a
// failed verification, never an error: callers branch on the boolean.
func VerifyPayment(secret []byte, gatewayOrderID, paymentID, received string) bool {
	if gatewayOrderID == "" || paymentID == "" {
		return false
	}
	return verify(secret, []byte(gatewayOrderID+"|"+paymentID), received)
}

// VerifyWebhook checks the signature header of an asynchronous gateway
// notification. The HMAC covers the raw request body, byte for byte, so the
// body must be read before any JSON decoding touches it.
func VerifyWebhook(secret, body []byte, received string) bool {
	if len(body) == 0 {
		return false
	}
	return verify(secret, body, received)
}

func verify(secret, payload []byte, received string) bool {
	if len(secret) == 0 || received == "" {
		return false
	}
	got, err := hex.DecodeString(received)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), got)
}

// Sign computes the hex HMAC-SHA256 the gateway would produce for payload.
// Exposed for tests and local tooling that emulate the gateway.
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
