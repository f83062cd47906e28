package registry

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/payment"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func (r *registry) DistributeRoyalties(ctx context.Context, caller domain.Address, tokenID domain.TokenID, totalAmount *big.Int) (*schema.RoyaltyDistribution, error) {
	now := r.now()

	var distribution *schema.RoyaltyDistribution
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		// The asset is locked so the partition cannot change under the payouts
		asset, err := loadAsset(ctx, tx, tokenID, true, domain.ErrNoIPData)
		if err != nil {
			return err
		}

		roles, err := loadRoles(ctx, tx, false)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, access.RoleAdministrator, access.State{Roles: roles}); err != nil {
			return err
		}

		if totalAmount == nil || totalAmount.Sign() < 0 || totalAmount.Cmp(math.MaxBig256) > 0 {
			return domain.ErrInvalidAmount
		}

		owners := asset.OwnerShares()
		amounts := SplitRoyalty(totalAmount, owners)

		reference := ulid.MustNewDefault(now).String()
		payouts := make([]store.RoyaltyPayoutInput, len(owners))
		settlement := payment.Settlement{
			Reference:   reference,
			TokenID:     tokenID,
			TotalAmount: totalAmount,
			Payouts:     make([]payment.Payout, 0, len(owners)),
			RequestedAt: now,
		}
		for i, owner := range owners {
			payouts[i] = store.RoyaltyPayoutInput{
				Position: i,
				Owner:    owner.Owner,
				Share:    owner.Share,
				Amount:   amounts[i].String(),
			}
			if amounts[i].Sign() > 0 {
				settlement.Payouts = append(settlement.Payouts, payment.Payout{
					Recipient: owner.Owner,
					Amount:    amounts[i],
				})
			}
		}

		distribution, err = tx.CreateRoyaltyDistribution(ctx, store.CreateRoyaltyDistributionInput{
			TokenID:             tokenID,
			TotalAmount:         totalAmount.String(),
			Payouts:             payouts,
			SettlementReference: reference,
			DistributedBy:       caller,
			DistributedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("failed to record royalty distribution: %w", err)
		}

		// Settlement runs last so a failed transfer rolls back the bookkeeping above
		if len(settlement.Payouts) > 0 {
			if err := r.gateway.Settle(ctx, settlement); err != nil {
				return fmt.Errorf("failed to settle royalties: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "distribute_royalties", caller, err)
	}

	logger.InfoCtx(ctx, "Royalties distributed",
		zap.String("tokenID", tokenID.String()),
		zap.String("totalAmount", totalAmount.String()),
		zap.String("reference", distribution.SettlementReference))

	payoutData := make(map[string]string, len(distribution.Payouts))
	for _, p := range distribution.Payouts {
		payoutData[p.OwnerAddress.String()] = p.Amount
	}
	r.publish(ctx, &domain.RegistryEvent{
		EventType: domain.EventTypeRoyaltiesDistributed,
		TokenID:   tokenID,
		Actor:     caller,
		Timestamp: now,
		Data: map[string]interface{}{
			"total_amount": totalAmount.String(),
			"payouts":      payoutData,
			"reference":    distribution.SettlementReference,
		},
	})

	return distribution, nil
}

func (r *registry) ListRoyaltyDistributions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.RoyaltyDistribution, uint64, error) {
	distributions, total, err := r.store.GetRoyaltyDistributions(ctx, tokenID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get royalty distributions: %w", err)
	}
	return distributions, total, nil
}

func (r *registry) GetAccountBalance(ctx context.Context, account domain.Address) (*big.Int, error) {
	balance, err := r.store.GetAccountBalance(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}

	amount, ok := new(big.Int).SetString(balance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored balance %q for %s", balance, account)
	}
	return amount, nil
}
