package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Header names sent with every delivery
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderEventID   = "X-Webhook-Event-ID"
	HeaderEventType = "X-Webhook-Event-Type"
	HeaderTimestamp = "X-Webhook-Timestamp"
	UserAgent       = "FF-IP-Registry-Webhook/1.0"
)

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature
// Returns the JSON payload, signature header value, timestamp, and any error
func GenerateSignedPayload(secret string, event WebhookEvent, now time.Time) (payload []byte, signature string, timestamp int64, err error) {
	payload, err = json.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = now.Unix()
	signature = Sign(secret, timestamp, event.EventID, payload)

	return payload, signature, timestamp, nil
}

// Sign computes the signature header value over "{timestamp}.{event_id}.{payload}".
// Clients check the timestamp against replays and the event ID for deduplication.
func Sign(secret string, timestamp int64, eventID string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(fmt.Sprintf("%d.%s.", timestamp, eventID)))
	h.Write(payload)

	// Format: "sha256=<hex_signature>"
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether signature matches the payload in constant time
func VerifySignature(secret, signature string, timestamp int64, eventID string, payload []byte) bool {
	expected := Sign(secret, timestamp, eventID, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
