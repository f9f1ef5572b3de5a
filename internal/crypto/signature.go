package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// ComputeMAC returns HMAC-SHA256(secret, "<timestamp>.<payload>").
func ComputeMAC(secret string, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(payload)
	return mac.Sum(nil)
}

// ComputeSignature returns the hex-encoded v1 signature for payload.
func ComputeSignature(secret string, timestamp int64, payload []byte) string {
	return hex.EncodeToString(ComputeMAC(secret, timestamp, payload))
}

// SignHeader builds a complete signature header value for payload.
func SignHeader(secret string, timestamp int64, payload []byte) string {
	return fmt.Sprintf("t=%d,%s=%s", timestamp, SchemeV1, ComputeSignature(secret, timestamp, payload))
}
