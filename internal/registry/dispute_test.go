package registry_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func TestRegistry_ResolveDispute(t *testing.T) {
	t.Run("resolver records a resolution", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetRoles(gomock.Any(), false).Return(testRolesRow(), nil)
		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().
			CreateDisputeResolution(gomock.Any(), store.CreateDisputeResolutionInput{
				TokenID:    testTokenID,
				Resolver:   testResolver,
				Resolution: "Attribution restored",
				ResolvedAt: testNow,
			}).
			Return(&schema.DisputeResolution{ID: 1, TokenID: testTokenID, Resolver: testResolver, Resolution: "Attribution restored", CreatedAt: testNow}, nil)
		expectEvent(t, tm, domain.EventTypeDisputeResolved)

		record, err := tm.registry.ResolveDispute(context.Background(), testResolver, testTokenID, "Attribution restored")
		require.NoError(t, err)
		assert.Equal(t, "Attribution restored", record.Resolution)
	})

	t.Run("administrator is not the resolver", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetRoles(gomock.Any(), false).Return(testRolesRow(), nil)
		tm.store.EXPECT().CreateDisputeResolution(gomock.Any(), gomock.Any()).Times(0)

		_, err := tm.registry.ResolveDispute(context.Background(), testAdmin, testTokenID, "x")
		assertRegistryError(t, domain.ErrNotDisputeResolver, err)
	})

	t.Run("unregistered asset", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetRoles(gomock.Any(), false).Return(testRolesRow(), nil)
		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(nil, nil)

		_, err := tm.registry.ResolveDispute(context.Background(), testResolver, testTokenID, "x")
		assertRegistryError(t, domain.ErrAssetNotFound, err)
	})
}

func TestRegistry_SetDisputeResolver(t *testing.T) {
	t.Run("handover moves the resolver role", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		roles := testRolesRow()
		tm.store.EXPECT().
			GetRoles(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, forUpdate bool) (*schema.RegistryRoles, error) {
				current := *roles
				return &current, nil
			}).
			AnyTimes()
		tm.store.EXPECT().
			UpdateDisputeResolver(gomock.Any(), store.UpdateDisputeResolverInput{
				DisputeResolver: testOwnerB,
				UpdatedBy:       testAdmin,
				UpdatedAt:       testNow,
			}).
			DoAndReturn(func(ctx context.Context, input store.UpdateDisputeResolverInput) (*schema.RegistryRoles, error) {
				roles.DisputeResolver = input.DisputeResolver
				current := *roles
				return &current, nil
			})
		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().CreateDisputeResolution(gomock.Any(), gomock.Any()).Return(&schema.DisputeResolution{ID: 1}, nil)
		expectEvent(t, tm, domain.EventTypeDisputeResolverUpdated)

		updated, err := tm.registry.SetDisputeResolver(context.Background(), testAdmin, testOwnerB)
		require.NoError(t, err)
		assert.Equal(t, testOwnerB, updated.DisputeResolver)
		assert.Equal(t, testAdmin, updated.Administrator)

		// The previous resolver is rejected immediately
		_, err = tm.registry.ResolveDispute(context.Background(), testResolver, testTokenID, "x")
		assertRegistryError(t, domain.ErrNotDisputeResolver, err)

		expectEvent(t, tm, domain.EventTypeDisputeResolved)
		_, err = tm.registry.ResolveDispute(context.Background(), testOwnerB, testTokenID, "x")
		require.NoError(t, err)
	})

	t.Run("non administrator", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetRoles(gomock.Any(), true).Return(testRolesRow(), nil)
		tm.store.EXPECT().UpdateDisputeResolver(gomock.Any(), gomock.Any()).Times(0)

		_, err := tm.registry.SetDisputeResolver(context.Background(), testResolver, testOwnerB)
		assertRegistryError(t, domain.ErrNotAdministrator, err)
	})

	t.Run("zero address", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetRoles(gomock.Any(), true).Return(testRolesRow(), nil)

		_, err := tm.registry.SetDisputeResolver(context.Background(), testAdmin, domain.MustParseAddress(domain.ETHEREUM_ZERO_ADDRESS))
		assertRegistryError(t, domain.ErrInvalidAccount, err)
	})
}
