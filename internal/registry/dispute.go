package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func (r *registry) ResolveDispute(ctx context.Context, caller domain.Address, tokenID domain.TokenID, resolution string) (*schema.DisputeResolution, error) {
	now := r.now()

	var record *schema.DisputeResolution
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		roles, err := loadRoles(ctx, tx, false)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, access.RoleDisputeResolver, access.State{Roles: roles}); err != nil {
			return err
		}

		if _, err := loadAsset(ctx, tx, tokenID, false, domain.ErrAssetNotFound); err != nil {
			return err
		}

		record, err = tx.CreateDisputeResolution(ctx, store.CreateDisputeResolutionInput{
			TokenID:    tokenID,
			Resolver:   caller,
			Resolution: resolution,
			ResolvedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to record dispute resolution: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "resolve_dispute", caller, err)
	}

	logger.InfoCtx(ctx, "Dispute resolved",
		zap.String("tokenID", tokenID.String()),
		zap.String("resolver", caller.String()))

	r.publish(ctx, &domain.RegistryEvent{
		EventType: domain.EventTypeDisputeResolved,
		TokenID:   tokenID,
		Actor:     caller,
		Timestamp: now,
		Data: map[string]interface{}{
			"resolution": resolution,
		},
	})

	return record, nil
}

func (r *registry) SetDisputeResolver(ctx context.Context, caller domain.Address, newResolver domain.Address) (*domain.Roles, error) {
	now := r.now()

	var previous, current domain.Roles
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		previous, err = loadRoles(ctx, tx, true)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, access.RoleAdministrator, access.State{Roles: previous}); err != nil {
			return err
		}
		if newResolver.IsZero() {
			return fmt.Errorf("%w: dispute resolver cannot be the zero address", domain.ErrInvalidAccount)
		}

		row, err := tx.UpdateDisputeResolver(ctx, store.UpdateDisputeResolverInput{
			DisputeResolver: newResolver,
			UpdatedBy:       caller,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("failed to update dispute resolver: %w", err)
		}
		current = row.Roles()

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "set_dispute_resolver", caller, err)
	}

	logger.InfoCtx(ctx, "Dispute resolver updated",
		zap.String("previous", previous.DisputeResolver.String()),
		zap.String("current", current.DisputeResolver.String()))

	r.publish(ctx, &domain.RegistryEvent{
		EventType: domain.EventTypeDisputeResolverUpdated,
		Actor:     caller,
		Timestamp: now,
		Data: map[string]interface{}{
			"previous": previous.DisputeResolver.String(),
			"current":  current.DisputeResolver.String(),
		},
	})

	return &current, nil
}

func (r *registry) ListDisputeResolutions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.DisputeResolution, uint64, error) {
	resolutions, total, err := r.store.GetDisputeResolutions(ctx, tokenID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get dispute resolutions: %w", err)
	}
	return resolutions, total, nil
}
