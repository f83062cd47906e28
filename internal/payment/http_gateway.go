package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

const (
	// SignatureHeader carries the HMAC-SHA256 of the canonical request body
	SignatureHeader = "X-Registry-Signature"
	// IdempotencyHeader carries the settlement reference
	IdempotencyHeader = "Idempotency-Key"
)

// ErrSettlementRejected is returned when the transfer service refuses a settlement
var ErrSettlementRejected = errors.New("settlement rejected")

// settlementRequest is the wire form of a settlement. Amounts are decimal strings.
type settlementRequest struct {
	Reference   string          `json:"reference"`
	TokenID     string          `json:"token_id"`
	TotalAmount string          `json:"total_amount"`
	Payouts     []payoutRequest `json:"payouts"`
	RequestedAt time.Time       `json:"requested_at"`
}

type payoutRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type httpGateway struct {
	url    string
	secret string
	http   adapter.HTTPClient
	json   adapter.JSON
	jcs    adapter.JCS
}

// NewHTTPGateway creates a gateway that posts signed settlements to an external transfer service
func NewHTTPGateway(url, secret string, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS) Gateway {
	return &httpGateway{
		url:    url,
		secret: secret,
		http:   httpClient,
		json:   jsonAdapter,
		jcs:    jcsAdapter,
	}
}

// Settle posts the settlement as canonical JSON (RFC 8785) signed with HMAC-SHA256.
// Any non-2xx response rejects the whole settlement.
func (g *httpGateway) Settle(ctx context.Context, settlement Settlement) error {
	req := settlementRequest{
		Reference:   settlement.Reference,
		TokenID:     settlement.TokenID.String(),
		TotalAmount: settlement.TotalAmount.String(),
		Payouts:     make([]payoutRequest, len(settlement.Payouts)),
		RequestedAt: settlement.RequestedAt.UTC(),
	}
	for i, p := range settlement.Payouts {
		req.Payouts[i] = payoutRequest{
			Recipient: p.Recipient.String(),
			Amount:    p.Amount.String(),
		}
	}

	raw, err := g.json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	body, err := g.jcs.Transform(raw)
	if err != nil {
		return fmt.Errorf("failed to canonicalize settlement: %w", err)
	}

	headers := map[string]string{
		"Content-Type":    "application/json",
		SignatureHeader:   Sign(g.secret, body),
		IdempotencyHeader: settlement.Reference,
	}

	resp, err := g.http.Post(ctx, g.url, headers, body)
	if err != nil {
		return fmt.Errorf("failed to post settlement: %w", err)
	}
	if !resp.OK() {
		logger.WarnCtx(ctx, "Settlement rejected by transfer service",
			zap.String("reference", settlement.Reference),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
		return fmt.Errorf("%w: status %d", ErrSettlementRejected, resp.StatusCode)
	}

	logger.InfoCtx(ctx, "Settlement accepted",
		zap.String("reference", settlement.Reference),
		zap.String("tokenID", settlement.TokenID.String()))

	return nil
}

// Sign returns the "sha256=<hex>" HMAC of body under secret
func Sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
