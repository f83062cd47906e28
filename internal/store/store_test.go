package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

var (
	testAdmin    = domain.MustParseAddress("0x1111111111111111111111111111111111111111")
	testResolver = domain.MustParseAddress("0x2222222222222222222222222222222222222222")
	testOwnerA   = domain.MustParseAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	testOwnerB   = domain.MustParseAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	testOwnerC   = domain.MustParseAddress("0xcccccccccccccccccccccccccccccccccccccccc")
	testNow      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestAsset creates a test registration input with a 600/400 partition
func buildTestAsset(tokenID string) CreateIPAssetInput {
	return CreateIPAssetInput{
		TokenID:      domain.MustParseTokenID(tokenID),
		MetadataURI:  "ipfs://meta/" + tokenID,
		RoyaltyRate:  100,
		ExpiryDate:   testNow.AddDate(5, 0, 0),
		LicenseTerms: "CC-BY",
		Owners: []domain.OwnerShare{
			{Owner: testOwnerA, Share: 600},
			{Owner: testOwnerB, Share: 400},
		},
		RegisteredBy: testAdmin,
		RegisteredAt: testNow,
	}
}

// createTestProposal registers an asset and opens a proposal on it
func createTestProposal(t *testing.T, store Store, tokenID string) *schema.Proposal {
	ctx := context.Background()
	_, err := store.CreateIPAsset(ctx, buildTestAsset(tokenID))
	require.NoError(t, err)

	proposal, err := store.CreateProposal(ctx, CreateProposalInput{
		TokenID:     domain.MustParseTokenID(tokenID),
		Proposer:    testOwnerA,
		Description: "switch to CC0",
		Deadline:    testNow.Add(domain.VOTING_PERIOD),
		CreatedAt:   testNow,
	})
	require.NoError(t, err)
	return proposal
}

// =============================================================================
// Test: Roles
// =============================================================================

func testRoles(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("roles are absent before initialization", func(t *testing.T) {
		roles, err := store.GetRoles(ctx, false)
		require.NoError(t, err)
		assert.Nil(t, roles)
	})

	t.Run("first initialization wins", func(t *testing.T) {
		roles, err := store.InitializeRoles(ctx, domain.Roles{Administrator: testAdmin, DisputeResolver: testAdmin})
		require.NoError(t, err)
		assert.Equal(t, testAdmin, roles.Administrator)
		assert.Equal(t, testAdmin, roles.DisputeResolver)

		roles, err = store.InitializeRoles(ctx, domain.Roles{Administrator: testOwnerA, DisputeResolver: testOwnerA})
		require.NoError(t, err)
		assert.Equal(t, testAdmin, roles.Administrator)
	})

	t.Run("update dispute resolver journals the change", func(t *testing.T) {
		roles, err := store.UpdateDisputeResolver(ctx, UpdateDisputeResolverInput{
			DisputeResolver: testResolver,
			UpdatedBy:       testAdmin,
			UpdatedAt:       testNow,
		})
		require.NoError(t, err)
		assert.Equal(t, testResolver, roles.DisputeResolver)
		assert.Equal(t, testAdmin, roles.Administrator)

		stored, err := store.GetRoles(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, testResolver, stored.DisputeResolver)

		changes, _, err := store.GetChanges(ctx, ChangesQueryFilter{SubjectTypes: []schema.SubjectType{schema.SubjectTypeRole}})
		require.NoError(t, err)
		require.Len(t, changes, 1)

		var meta schema.RoleChangeMeta
		require.NoError(t, json.Unmarshal(changes[0].Meta, &meta))
		assert.Equal(t, testAdmin.String(), meta.Old)
		assert.Equal(t, testResolver.String(), meta.New)
	})
}

// =============================================================================
// Test: Assets
// =============================================================================

func testIPAssets(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and get asset keeps owner order", func(t *testing.T) {
		input := buildTestAsset("1")
		input.Owners = []domain.OwnerShare{
			{Owner: testOwnerC, Share: 100},
			{Owner: testOwnerA, Share: 500},
			{Owner: testOwnerB, Share: 400},
		}

		created, err := store.CreateIPAsset(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, uint32(domain.TOTAL_SHARES), created.TotalSupply)

		asset, err := store.GetIPAsset(ctx, input.TokenID, false)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, input.MetadataURI, asset.MetadataURI)
		assert.Equal(t, uint32(100), asset.RoyaltyRate)
		assert.Equal(t, "CC-BY", asset.LicenseTerms)
		assert.True(t, input.ExpiryDate.Equal(asset.ExpiryDate))
		assert.Equal(t, []domain.Address{testOwnerC, testOwnerA, testOwnerB}, asset.OwnerAddresses())
		assert.Equal(t, uint32(500), asset.ShareOf(testOwnerA))
		assert.Equal(t, uint32(0), asset.ShareOf(testResolver))
	})

	t.Run("missing asset returns nil", func(t *testing.T) {
		asset, err := store.GetIPAsset(ctx, domain.MustParseTokenID("404"), true)
		require.NoError(t, err)
		assert.Nil(t, asset)
	})

	t.Run("re-registration is rejected and leaves the asset untouched", func(t *testing.T) {
		_, err := store.CreateIPAsset(ctx, buildTestAsset("2"))
		require.NoError(t, err)

		again := buildTestAsset("2")
		again.MetadataURI = "ipfs://other"
		_, err = store.CreateIPAsset(ctx, again)
		assert.True(t, errors.Is(err, domain.ErrAlreadyRegistered))

		asset, err := store.GetIPAsset(ctx, again.TokenID, false)
		require.NoError(t, err)
		assert.Equal(t, "ipfs://meta/2", asset.MetadataURI)
		assert.Len(t, asset.Owners, 2)
	})

	t.Run("list assets by owner", func(t *testing.T) {
		input := buildTestAsset("3")
		input.Owners = []domain.OwnerShare{{Owner: testResolver, Share: 1000}}
		_, err := store.CreateIPAsset(ctx, input)
		require.NoError(t, err)

		assets, total, err := store.ListIPAssets(ctx, IPAssetQueryFilter{Owner: &testResolver, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, assets, 1)
		assert.Equal(t, input.TokenID, assets[0].TokenID)
	})

	t.Run("registration is journaled", func(t *testing.T) {
		changes, _, err := store.GetChanges(ctx, ChangesQueryFilter{
			TokenIDs:     []domain.TokenID{"1"},
			SubjectTypes: []schema.SubjectType{schema.SubjectTypeAsset},
		})
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, testAdmin.String(), changes[0].Actor)
	})
}

// =============================================================================
// Test: Royalties
// =============================================================================

func testRoyaltyDistributions(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.CreateIPAsset(ctx, buildTestAsset("10"))
	require.NoError(t, err)

	distribute := func(total, a, b string) *schema.RoyaltyDistribution {
		d, err := store.CreateRoyaltyDistribution(ctx, CreateRoyaltyDistributionInput{
			TokenID:     "10",
			TotalAmount: total,
			Payouts: []RoyaltyPayoutInput{
				{Position: 0, Owner: testOwnerA, Share: 600, Amount: a},
				{Position: 1, Owner: testOwnerB, Share: 400, Amount: b},
			},
			DistributedBy: testAdmin,
			DistributedAt: testNow,
		})
		require.NoError(t, err)
		return d
	}

	t.Run("distribution records payouts and credits balances", func(t *testing.T) {
		d := distribute("1000", "600", "400")
		assert.NotZero(t, d.ID)
		assert.Len(t, d.Payouts, 2)

		balance, err := store.GetAccountBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, "600", balance)
	})

	t.Run("balances accumulate beyond 64 bits", func(t *testing.T) {
		distribute("100000000000000000000000", "60000000000000000000000", "40000000000000000000000")

		balance, err := store.GetAccountBalance(ctx, testOwnerB)
		require.NoError(t, err)
		assert.Equal(t, "40000000000000000000400", balance)
	})

	t.Run("unknown account has zero balance", func(t *testing.T) {
		balance, err := store.GetAccountBalance(ctx, testOwnerC)
		require.NoError(t, err)
		assert.Equal(t, "0", balance)
	})

	t.Run("distributions are listed newest first", func(t *testing.T) {
		distributions, total, err := store.GetRoyaltyDistributions(ctx, "10", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, distributions, 2)
		assert.Equal(t, "100000000000000000000000", distributions[0].TotalAmount)
		assert.Equal(t, "60000000000000000000000", distributions[0].Payouts[0].Amount)
	})
}

// =============================================================================
// Test: Governance
// =============================================================================

func testProposals(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("proposal starts open with zero votes", func(t *testing.T) {
		proposal := createTestProposal(t, store, "20")
		assert.NotZero(t, proposal.ID)
		assert.Equal(t, uint32(0), proposal.VoteCount)
		assert.False(t, proposal.Executed)

		stored, err := store.GetProposal(ctx, proposal.ID, false)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "switch to CC0", stored.Description)
		assert.True(t, testNow.Add(domain.VOTING_PERIOD).Equal(stored.Deadline))
	})

	t.Run("proposal ids increase", func(t *testing.T) {
		first := createTestProposal(t, store, "21")
		second, err := store.CreateProposal(ctx, CreateProposalInput{
			TokenID:     "21",
			Proposer:    testOwnerB,
			Description: "second",
			Deadline:    testNow.Add(domain.VOTING_PERIOD),
			CreatedAt:   testNow,
		})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		proposals, total, err := store.GetProposalsByTokenID(ctx, "21", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Equal(t, first.ID, proposals[0].ID)
	})

	t.Run("votes accumulate yes weight only", func(t *testing.T) {
		proposal := createTestProposal(t, store, "22")

		updated, err := store.CreateVote(ctx, CreateVoteInput{
			ProposalID: proposal.ID, TokenID: "22", Voter: testOwnerA, Support: true, Weight: 600, VotedAt: testNow,
		})
		require.NoError(t, err)
		assert.Equal(t, uint32(600), updated.VoteCount)

		updated, err = store.CreateVote(ctx, CreateVoteInput{
			ProposalID: proposal.ID, TokenID: "22", Voter: testOwnerB, Support: false, Weight: 400, VotedAt: testNow,
		})
		require.NoError(t, err)
		assert.Equal(t, uint32(600), updated.VoteCount)
		assert.True(t, updated.HasVoted(testOwnerB))
		assert.Equal(t, []domain.Address{testOwnerA, testOwnerB}, updated.Voters())
	})

	t.Run("double vote is rejected", func(t *testing.T) {
		proposal := createTestProposal(t, store, "23")
		input := CreateVoteInput{ProposalID: proposal.ID, TokenID: "23", Voter: testOwnerA, Support: true, Weight: 600, VotedAt: testNow}

		_, err := store.CreateVote(ctx, input)
		require.NoError(t, err)

		_, err = store.CreateVote(ctx, input)
		assert.True(t, errors.Is(err, domain.ErrAlreadyVoted))

		stored, err := store.GetProposal(ctx, proposal.ID, false)
		require.NoError(t, err)
		assert.Equal(t, uint32(600), stored.VoteCount)
	})

	t.Run("execution rewrites license terms once", func(t *testing.T) {
		proposal := createTestProposal(t, store, "24")
		input := MarkProposalExecutedInput{
			ProposalID:   proposal.ID,
			TokenID:      "24",
			LicenseTerms: proposal.Description,
			ExecutedBy:   testOwnerB,
			ExecutedAt:   testNow.Add(domain.VOTING_PERIOD),
		}

		executed, err := store.MarkProposalExecuted(ctx, input)
		require.NoError(t, err)
		assert.True(t, executed.Executed)
		require.NotNil(t, executed.ExecutedBy)
		assert.Equal(t, testOwnerB, *executed.ExecutedBy)

		asset, err := store.GetIPAsset(ctx, "24", false)
		require.NoError(t, err)
		assert.Equal(t, "switch to CC0", asset.LicenseTerms)

		_, err = store.MarkProposalExecuted(ctx, input)
		assert.True(t, errors.Is(err, domain.ErrAlreadyExecuted))

		changes, _, err := store.GetChanges(ctx, ChangesQueryFilter{
			TokenIDs:     []domain.TokenID{"24"},
			SubjectTypes: []schema.SubjectType{schema.SubjectTypeLicense},
		})
		require.NoError(t, err)
		require.Len(t, changes, 1)

		var meta schema.LicenseChangeMeta
		require.NoError(t, json.Unmarshal(changes[0].Meta, &meta))
		assert.Equal(t, "CC-BY", meta.Old)
		assert.Equal(t, "switch to CC0", meta.New)
	})

	t.Run("missing proposal returns nil", func(t *testing.T) {
		proposal, err := store.GetProposal(ctx, 999999, false)
		require.NoError(t, err)
		assert.Nil(t, proposal)
	})
}

// =============================================================================
// Test: Disputes
// =============================================================================

func testDisputeResolutions(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.CreateIPAsset(ctx, buildTestAsset("30"))
	require.NoError(t, err)

	for _, text := range []string{"first ruling", "second ruling"} {
		_, err := store.CreateDisputeResolution(ctx, CreateDisputeResolutionInput{
			TokenID:    "30",
			Resolver:   testResolver,
			Resolution: text,
			ResolvedAt: testNow,
		})
		require.NoError(t, err)
	}

	resolutions, total, err := store.GetDisputeResolutions(ctx, "30", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, resolutions, 2)
	assert.Equal(t, "first ruling", resolutions[0].Resolution)
	assert.Equal(t, testResolver, resolutions[1].Resolver)
}

// =============================================================================
// Test: Changes journal
// =============================================================================

func testGetChanges(t *testing.T, store Store) {
	ctx := context.Background()

	createTestProposal(t, store, "40")
	createTestProposal(t, store, "41")

	t.Run("filter by token", func(t *testing.T) {
		changes, total, err := store.GetChanges(ctx, ChangesQueryFilter{TokenIDs: []domain.TokenID{"40"}})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, changes, 2)
		assert.Equal(t, schema.SubjectTypeAsset, changes[0].SubjectType)
		assert.Equal(t, schema.SubjectTypeProposal, changes[1].SubjectType)
	})

	t.Run("anchor continues after the last seen id", func(t *testing.T) {
		filter := ChangesQueryFilter{TokenIDs: []domain.TokenID{"40", "41"}, Limit: 2}
		page, total, err := store.GetChanges(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
		require.Len(t, page, 2)

		filter.Anchor = &page[1].ID
		next, _, err := store.GetChanges(ctx, filter)
		require.NoError(t, err)
		require.Len(t, next, 2)
		assert.Greater(t, next[0].ID, page[1].ID)
	})

	t.Run("filter by actor", func(t *testing.T) {
		changes, _, err := store.GetChanges(ctx, ChangesQueryFilter{
			TokenIDs: []domain.TokenID{"40", "41"},
			Actors:   []domain.Address{testOwnerA},
		})
		require.NoError(t, err)
		assert.Len(t, changes, 2)
	})
}

// =============================================================================
// Test: Transactions
// =============================================================================

func testWithTx(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("error rolls back every write", func(t *testing.T) {
		boom := errors.New("settlement failed")
		err := store.WithTx(ctx, func(tx Store) error {
			if _, err := tx.CreateIPAsset(ctx, buildTestAsset("50")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		asset, err := store.GetIPAsset(ctx, "50", false)
		require.NoError(t, err)
		assert.Nil(t, asset)
	})

	t.Run("success commits", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx Store) error {
			_, err := tx.CreateIPAsset(ctx, buildTestAsset("51"))
			return err
		})
		require.NoError(t, err)

		asset, err := store.GetIPAsset(ctx, "51", false)
		require.NoError(t, err)
		assert.NotNil(t, asset)
	})
}

// =============================================================================
// Test: Webhooks
// =============================================================================

func testWebhookClients(t *testing.T, store Store) {
	ctx := context.Background()

	create := func(clientID string, filters []string, active bool) {
		raw, err := json.Marshal(filters)
		require.NoError(t, err)
		_, err = store.CreateWebhookClient(ctx, CreateWebhookClientInput{
			ClientID:         clientID,
			WebhookURL:       "https://example.com/hook/" + clientID,
			WebhookSecret:    "secret",
			EventFilters:     datatypes.JSON(raw),
			IsActive:         active,
			RetryMaxAttempts: 3,
		})
		require.NoError(t, err)
	}

	create("00000000-0000-0000-0000-000000000001", []string{string(domain.EventTypeIPRegistered)}, true)
	create("00000000-0000-0000-0000-000000000002", []string{"*"}, true)
	create("00000000-0000-0000-0000-000000000003", []string{string(domain.EventTypeIPRegistered)}, false)

	clients, err := store.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypeIPRegistered))
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	clients, err = store.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypeDisputeResolved))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", clients[0].ClientID)

	client, err := store.GetWebhookClientByID(ctx, "00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, 3, client.RetryMaxAttempts)

	missing, err := store.GetWebhookClientByID(ctx, "00000000-0000-0000-0000-00000000ffff")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testWebhookDeliveries(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.CreateWebhookClient(ctx, CreateWebhookClientInput{
		ClientID:         "00000000-0000-0000-0000-0000000000aa",
		WebhookURL:       "https://example.com/hook",
		WebhookSecret:    "secret",
		EventFilters:     datatypes.JSON(`["*"]`),
		IsActive:         true,
		RetryMaxAttempts: 3,
	})
	require.NoError(t, err)

	delivery := &schema.WebhookDelivery{
		ClientID:       "00000000-0000-0000-0000-0000000000aa",
		EventID:        "01JQ0000000000000000000000",
		EventType:      string(domain.EventTypeProposalExecuted),
		Payload:        datatypes.JSON(`{"event_type":"proposal.executed"}`),
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
	}
	require.NoError(t, store.CreateWebhookDelivery(ctx, delivery))
	assert.NotZero(t, delivery.ID)

	delivered, err := store.HasSuccessfulWebhookDelivery(ctx, delivery.ClientID, delivery.EventID)
	require.NoError(t, err)
	assert.False(t, delivered, "pending delivery does not count")

	status := 503
	err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusFailed, 1, &status, "", "unavailable")
	require.NoError(t, err)
	delivered, err = store.HasSuccessfulWebhookDelivery(ctx, delivery.ClientID, delivery.EventID)
	require.NoError(t, err)
	assert.False(t, delivered, "failed delivery does not count")

	status = 200
	err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusSuccess, 2, &status, "ok", "")
	require.NoError(t, err)
	delivered, err = store.HasSuccessfulWebhookDelivery(ctx, delivery.ClientID, delivery.EventID)
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered, err = store.HasSuccessfulWebhookDelivery(ctx, delivery.ClientID, "01JQ0000000000000000000001")
	require.NoError(t, err)
	assert.False(t, delivered, "other events are unaffected")
}

// RunStoreTests runs all store tests against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store Store)
	}{
		{"Roles", testRoles},
		{"IPAssets", testIPAssets},
		{"RoyaltyDistributions", testRoyaltyDistributions},
		{"Proposals", testProposals},
		{"DisputeResolutions", testDisputeResolutions},
		{"GetChanges", testGetChanges},
		{"WithTx", testWithTx},
		{"WebhookClients", testWebhookClients},
		{"WebhookDeliveries", testWebhookDeliveries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
