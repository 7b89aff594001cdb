package procwebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Standard signature header names, shared with the processor's sender side.
const (
	headerSignature = "X-Webhook-Signature"
	headerTimestamp = "X-Webhook-Timestamp"
)

// signPayload computes the hex HMAC-SHA256 over "timestamp.payload".
// Timestamp binding prevents replay of captured notifications.
func signPayload(secret string, timestamp int64, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s", timestamp, payload)
	return hex.EncodeToString(h.Sum(nil))
}

// verifySignature checks the request's signature headers against the payload.
// Comparison is constant time; maxAge of zero disables the timestamp window.
func verifySignature(secret string, payload []byte, headers http.Header, maxAge time.Duration) error {
	signature := headers.Get(headerSignature)
	if signature == "" {
		return fmt.Errorf("%w: signature header is missing", ErrInvalidSignature)
	}

	timestamp, err := strconv.ParseInt(headers.Get(headerTimestamp), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid timestamp header", ErrInvalidSignature)
	}

	if maxAge > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > maxAge {
			return fmt.Errorf("%w: timestamp too old: %v", ErrInvalidSignature, age)
		}
		if age < -time.Minute {
			return fmt.Errorf("%w: timestamp is in the future", ErrInvalidSignature)
		}
	}

	expected := signPayload(secret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}

	return nil
}

// Verification computes the challenge handshake response: the public key
// and the hex HMAC-SHA256 of the challenge token, pipe-separated. The
// processor compares this value byte for byte.
func Verification(publicKey, secret, challenge string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(challenge))
	return publicKey + "|" + hex.EncodeToString(h.Sum(nil))
}
