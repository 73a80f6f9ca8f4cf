package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// CallbackSignature computes the gateway callback signature: a base64
// encoded HMAC-SHA256 keyed with the shared secret over the concatenation
// of order id, secret, reported status and reported total amount. Both
// sides must produce byte-identical encodings for verification to succeed.
func CallbackSignature(orderID, secret, status, totalAmount string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + secret + status + totalAmount))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyCallbackSignature checks a declared signature against the recomputed
// one in constant time.
func VerifyCallbackSignature(orderID, secret, status, totalAmount, declared string) bool {
	if strings.TrimSpace(secret) == "" || strings.TrimSpace(declared) == "" {
		return false
	}
	expected := CallbackSignature(orderID, secret, status, totalAmount)
	return hmac.Equal([]byte(expected), []byte(declared))
}
