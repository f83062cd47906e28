package registry

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func (r *registry) RegisterIP(ctx context.Context, caller domain.Address, input RegisterIPInput) (*schema.IPAsset, error) {
	now := r.now()

	var asset *schema.IPAsset
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		roles, err := loadRoles(ctx, tx, false)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, access.RoleAdministrator, access.State{Roles: roles}); err != nil {
			return err
		}

		owners, err := ValidateRegistration(input, r.denylist)
		if err != nil {
			return err
		}

		existing, err := tx.GetIPAsset(ctx, input.TokenID, false)
		if err != nil {
			return fmt.Errorf("failed to get asset: %w", err)
		}
		if existing != nil {
			return domain.ErrAlreadyRegistered
		}

		asset, err = tx.CreateIPAsset(ctx, store.CreateIPAssetInput{
			TokenID:      input.TokenID,
			MetadataURI:  input.MetadataURI,
			RoyaltyRate:  input.RoyaltyRate,
			ExpiryDate:   input.ExpiryDate.UTC(),
			LicenseTerms: input.LicenseTerms,
			Owners:       owners,
			RegisteredBy: caller,
			RegisteredAt: now,
		})
		if err != nil {
			// A concurrent registration of the same token surfaces as ErrAlreadyRegistered
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("failed to create asset: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "register_ip", caller, err)
	}

	logger.InfoCtx(ctx, "IP asset registered",
		zap.String("tokenID", asset.TokenID.String()),
		zap.Int("owners", len(asset.Owners)),
		zap.Uint32("royaltyRate", asset.RoyaltyRate))

	r.publish(ctx, &domain.RegistryEvent{
		EventType: domain.EventTypeIPRegistered,
		TokenID:   asset.TokenID,
		Actor:     caller,
		Timestamp: now,
		Data: map[string]interface{}{
			"metadata_uri":  asset.MetadataURI,
			"owners":        asset.OwnerShares(),
			"royalty_rate":  asset.RoyaltyRate,
			"license_terms": asset.LicenseTerms,
			"expiry_date":   asset.ExpiryDate,
		},
	})

	return asset, nil
}

func (r *registry) GetIPMetadata(ctx context.Context, tokenID domain.TokenID) (*schema.IPAsset, error) {
	return loadAsset(ctx, r.store, tokenID, false, domain.ErrAssetNotFound)
}

func (r *registry) GetOwner(ctx context.Context, tokenID domain.TokenID, index int) (domain.Address, error) {
	asset, err := loadAsset(ctx, r.store, tokenID, false, domain.ErrAssetNotFound)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(asset.Owners) {
		return "", fmt.Errorf("%w: index %d, %d owners", domain.ErrOwnerIndexOutOfRange, index, len(asset.Owners))
	}
	return asset.Owners[index].OwnerAddress, nil
}

func (r *registry) GetOwnershipShare(ctx context.Context, tokenID domain.TokenID, owner domain.Address) (uint32, error) {
	asset, err := loadAsset(ctx, r.store, tokenID, false, domain.ErrAssetNotFound)
	if err != nil {
		return 0, err
	}
	return asset.ShareOf(owner), nil
}

func (r *registry) GetTotalSupply(ctx context.Context, tokenID domain.TokenID) (uint32, error) {
	asset, err := loadAsset(ctx, r.store, tokenID, false, domain.ErrAssetNotFound)
	if err != nil {
		return 0, err
	}
	return asset.TotalSupply, nil
}

func (r *registry) ListAssets(ctx context.Context, owner *domain.Address, limit int, offset uint64) ([]*schema.IPAsset, uint64, error) {
	assets, total, err := r.store.ListIPAssets(ctx, store.IPAssetQueryFilter{
		Owner:  owner,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, total, nil
}
