// Package payment settles royalty distributions with the external value-transfer collaborator.
package payment

import (
	"context"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// Payout is the amount transferred to a single recipient
type Payout struct {
	Recipient domain.Address
	Amount    *big.Int
}

// Settlement is a batch of payouts for one royalty distribution.
// It is settled entirely or not at all.
type Settlement struct {
	// Reference identifies the distribution and doubles as the idempotency key
	Reference   string
	TokenID     domain.TokenID
	TotalAmount *big.Int
	Payouts     []Payout
	RequestedAt time.Time
}

// Gateway transfers royalty payouts to owners
//
//go:generate mockgen -source=gateway.go -destination=../mocks/payment_gateway.go -package=mocks -mock_names=Gateway=MockPaymentGateway
type Gateway interface {
	// Settle transfers every payout of the settlement or returns an error
	Settle(ctx context.Context, settlement Settlement) error
}

type ledgerGateway struct{}

// NewLedgerGateway returns a gateway that keeps royalties as registry balance credits
// without calling an external transfer service
func NewLedgerGateway() Gateway {
	return &ledgerGateway{}
}

// Settle accepts the settlement as is
func (g *ledgerGateway) Settle(ctx context.Context, settlement Settlement) error {
	logger.DebugCtx(ctx, "Settlement kept as balance credits",
		zap.String("reference", settlement.Reference),
		zap.String("tokenID", settlement.TokenID.String()),
		zap.Int("payouts", len(settlement.Payouts)))
	return nil
}
