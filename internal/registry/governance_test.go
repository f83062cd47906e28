package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func testProposal() *schema.Proposal {
	return &schema.Proposal{
		ID:          1,
		TokenID:     testTokenID,
		Proposer:    testOwnerA,
		Description: "Update license terms",
		Deadline:    testNow.Add(domain.VOTING_PERIOD),
		CreatedAt:   testNow,
	}
}

func TestRegistry_CreateProposal(t *testing.T) {
	t.Run("owner creates a proposal", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().
			CreateProposal(gomock.Any(), store.CreateProposalInput{
				TokenID:     testTokenID,
				Proposer:    testOwnerA,
				Description: "Update license terms",
				Deadline:    testNow.Add(604800 * time.Second),
				CreatedAt:   testNow,
			}).
			Return(testProposal(), nil)
		event := expectEvent(t, tm, domain.EventTypeProposalCreated)

		proposal, err := tm.registry.CreateProposal(context.Background(), testOwnerA, testTokenID, "Update license terms")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), proposal.ID)
		assert.Zero(t, proposal.VoteCount)
		assert.False(t, proposal.Executed)
		assert.Equal(t, domain.ProposalStatusOpen, proposal.Status)
		require.NotNil(t, event.ProposalID)
		assert.Equal(t, uint64(1), *event.ProposalID)
	})

	t.Run("non owner", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().CreateProposal(gomock.Any(), gomock.Any()).Times(0)

		_, err := tm.registry.CreateProposal(context.Background(), testStranger, testTokenID, "x")
		assertRegistryError(t, domain.ErrNotAnOwner, err)
	})

	t.Run("unregistered asset has no owners", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(nil, nil)

		_, err := tm.registry.CreateProposal(context.Background(), testOwnerA, testTokenID, "x")
		assertRegistryError(t, domain.ErrNotAnOwner, err)
	})
}

func TestRegistry_Vote(t *testing.T) {
	t.Run("yes vote adds the voter's share", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(testProposal(), nil)
		tm.store.EXPECT().
			CreateVote(gomock.Any(), store.CreateVoteInput{
				ProposalID: 1,
				TokenID:    testTokenID,
				Voter:      testOwnerA,
				Support:    true,
				Weight:     500,
				VotedAt:    testNow,
			}).
			DoAndReturn(func(ctx context.Context, input store.CreateVoteInput) (*schema.Proposal, error) {
				p := testProposal()
				p.VoteCount = 500
				p.Votes = []schema.ProposalVote{{ProposalID: 1, Voter: testOwnerA, Support: true, Weight: 500}}
				return p, nil
			})
		expectEvent(t, tm, domain.EventTypeVoteCast)

		proposal, err := tm.registry.Vote(context.Background(), testOwnerA, testTokenID, 1, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(500), proposal.VoteCount)
		assert.Equal(t, []domain.Address{testOwnerA}, proposal.Voters())
	})

	t.Run("no vote is recorded with its weight", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(testProposal(), nil)
		tm.store.EXPECT().
			CreateVote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, input store.CreateVoteInput) (*schema.Proposal, error) {
				assert.False(t, input.Support)
				assert.Equal(t, uint32(500), input.Weight)
				p := testProposal()
				p.Votes = []schema.ProposalVote{{ProposalID: 1, Voter: testOwnerB, Support: false, Weight: 500}}
				return p, nil
			})
		expectEvent(t, tm, domain.EventTypeVoteCast)

		proposal, err := tm.registry.Vote(context.Background(), testOwnerB, testTokenID, 1, false)
		require.NoError(t, err)
		assert.Zero(t, proposal.VoteCount)
	})

	rejections := []struct {
		name     string
		caller   domain.Address
		asset    *schema.IPAsset
		proposal func() *schema.Proposal
		now      time.Time
		expected *domain.RegistryError
	}{
		{
			name:     "non owner",
			caller:   testStranger,
			asset:    testAsset(),
			expected: domain.ErrNotAnOwner,
		},
		{
			name:     "unregistered asset",
			caller:   testOwnerA,
			asset:    nil,
			expected: domain.ErrNotAnOwner,
		},
		{
			name:     "unknown proposal",
			caller:   testOwnerA,
			asset:    testAsset(),
			proposal: func() *schema.Proposal { return nil },
			expected: domain.ErrProposalNotFound,
		},
		{
			name:   "proposal of another asset",
			caller: testOwnerA,
			asset:  testAsset(),
			proposal: func() *schema.Proposal {
				p := testProposal()
				p.TokenID = domain.MustParseTokenID("2")
				return p
			},
			expected: domain.ErrProposalNotFound,
		},
		{
			name:   "second vote",
			caller: testOwnerA,
			asset:  testAsset(),
			proposal: func() *schema.Proposal {
				p := testProposal()
				p.Votes = []schema.ProposalVote{{ProposalID: 1, Voter: testOwnerA, Support: false, Weight: 500}}
				return p
			},
			expected: domain.ErrAlreadyVoted,
		},
		{
			name:     "at the deadline",
			caller:   testOwnerA,
			asset:    testAsset(),
			proposal: testProposal,
			now:      testNow.Add(domain.VOTING_PERIOD),
			expected: domain.ErrVotingClosed,
		},
		{
			name:   "executed proposal",
			caller: testOwnerA,
			asset:  testAsset(),
			proposal: func() *schema.Proposal {
				p := testProposal()
				p.Executed = true
				return p
			},
			expected: domain.ErrVotingClosed,
		},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestRegistry(t)
			defer tearDownTestRegistry(tm)
			if !tt.now.IsZero() {
				tm.now = tt.now
			}

			tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(tt.asset, nil)
			if tt.proposal != nil {
				tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(tt.proposal(), nil)
			}
			tm.store.EXPECT().CreateVote(gomock.Any(), gomock.Any()).Times(0)
			tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Times(0)

			_, err := tm.registry.Vote(context.Background(), tt.caller, testTokenID, 1, true)
			assertRegistryError(t, tt.expected, err)
		})
	}

	t.Run("concurrent duplicate vote loses the insert", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, false).Return(testAsset(), nil)
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(testProposal(), nil)
		tm.store.EXPECT().CreateVote(gomock.Any(), gomock.Any()).Return(nil, domain.ErrAlreadyVoted)

		_, err := tm.registry.Vote(context.Background(), testOwnerA, testTokenID, 1, true)
		assertRegistryError(t, domain.ErrAlreadyVoted, err)
	})
}

func TestRegistry_ExecuteProposal(t *testing.T) {
	afterDeadline := testNow.Add(domain.VOTING_PERIOD)

	t.Run("majority executes and rewrites license terms", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)
		tm.now = afterDeadline

		proposal := testProposal()
		proposal.VoteCount = 501
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(proposal, nil)
		tm.store.EXPECT().
			MarkProposalExecuted(gomock.Any(), store.MarkProposalExecutedInput{
				ProposalID:   1,
				TokenID:      testTokenID,
				LicenseTerms: "Update license terms",
				ExecutedBy:   testStranger,
				ExecutedAt:   afterDeadline,
			}).
			DoAndReturn(func(ctx context.Context, input store.MarkProposalExecutedInput) (*schema.Proposal, error) {
				executed := testProposal()
				executed.VoteCount = 501
				executed.Executed = true
				executed.ExecutedAt = &input.ExecutedAt
				executed.ExecutedBy = &input.ExecutedBy
				return executed, nil
			})
		expectEvent(t, tm, domain.EventTypeProposalExecuted)

		// Execution is open to any caller once the window closed
		result, err := tm.registry.ExecuteProposal(context.Background(), testStranger, testTokenID, 1)
		require.NoError(t, err)
		assert.True(t, result.Executed)
		assert.Equal(t, domain.ProposalStatusExecuted, result.Status)
	})

	t.Run("before deadline regardless of tally", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)
		tm.now = afterDeadline.Add(-time.Second)

		proposal := testProposal()
		proposal.VoteCount = 1000
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(proposal, nil)
		tm.store.EXPECT().MarkProposalExecuted(gomock.Any(), gomock.Any()).Times(0)

		_, err := tm.registry.ExecuteProposal(context.Background(), testOwnerA, testTokenID, 1)
		assertRegistryError(t, domain.ErrVotingPeriodNotEnded, err)
	})

	t.Run("already executed", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)
		tm.now = afterDeadline

		proposal := testProposal()
		proposal.VoteCount = 1000
		proposal.Executed = true
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(proposal, nil)

		_, err := tm.registry.ExecuteProposal(context.Background(), testOwnerA, testTokenID, 1)
		assertRegistryError(t, domain.ErrAlreadyExecuted, err)
	})

	t.Run("exactly half is rejected", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)
		tm.now = afterDeadline

		proposal := testProposal()
		proposal.VoteCount = 500
		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), true).Return(proposal, nil)
		tm.store.EXPECT().MarkProposalExecuted(gomock.Any(), gomock.Any()).Times(0)
		tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Times(0)

		_, err := tm.registry.ExecuteProposal(context.Background(), testOwnerA, testTokenID, 1)
		assertRegistryError(t, domain.ErrProposalRejected, err)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tearDownTestRegistry(tm)

		tm.store.EXPECT().GetProposal(gomock.Any(), uint64(7), true).Return(nil, nil)

		_, err := tm.registry.ExecuteProposal(context.Background(), testOwnerA, testTokenID, 7)
		assertRegistryError(t, domain.ErrProposalNotFound, err)
	})
}

func TestRegistry_GetProposal(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tearDownTestRegistry(tm)

	tm.store.EXPECT().GetProposal(gomock.Any(), uint64(1), false).Return(testProposal(), nil)
	tm.now = testNow.Add(domain.VOTING_PERIOD).Add(time.Hour)

	proposal, err := tm.registry.GetProposal(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusLapsed, proposal.Status)

	tm.store.EXPECT().GetProposal(gomock.Any(), uint64(2), false).Return(nil, nil)
	_, err = tm.registry.GetProposal(context.Background(), 2)
	assertRegistryError(t, domain.ErrProposalNotFound, err)
}

// TestRegistry_GovernanceScenario walks asset 1 (A 500, B 500) through a proposal
// that A alone supports, then through one that both owners support.
func TestRegistry_GovernanceScenario(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tearDownTestRegistry(tm)

	proposals := map[uint64]*schema.Proposal{}
	var nextID uint64 = 1

	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tm.store.EXPECT().GetIPAsset(gomock.Any(), testTokenID, gomock.Any()).Return(testAsset(), nil).AnyTimes()
	tm.store.EXPECT().
		CreateProposal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.CreateProposalInput) (*schema.Proposal, error) {
			p := &schema.Proposal{
				ID:          nextID,
				TokenID:     input.TokenID,
				Proposer:    input.Proposer,
				Description: input.Description,
				Deadline:    input.Deadline,
				CreatedAt:   input.CreatedAt,
			}
			proposals[p.ID] = p
			nextID++
			return p, nil
		}).
		AnyTimes()
	tm.store.EXPECT().
		GetProposal(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64, forUpdate bool) (*schema.Proposal, error) {
			return proposals[id], nil
		}).
		AnyTimes()
	tm.store.EXPECT().
		CreateVote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.CreateVoteInput) (*schema.Proposal, error) {
			p := proposals[input.ProposalID]
			p.Votes = append(p.Votes, schema.ProposalVote{ProposalID: p.ID, Voter: input.Voter, Support: input.Support, Weight: input.Weight})
			if input.Support {
				p.VoteCount += input.Weight
			}
			return p, nil
		}).
		AnyTimes()
	tm.store.EXPECT().
		MarkProposalExecuted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.MarkProposalExecutedInput) (*schema.Proposal, error) {
			p := proposals[input.ProposalID]
			p.Executed = true
			return p, nil
		}).
		AnyTimes()

	ctx := context.Background()

	first, err := tm.registry.CreateProposal(ctx, testOwnerA, testTokenID, "Update license terms")
	require.NoError(t, err)
	assert.Zero(t, first.VoteCount)
	assert.Equal(t, first.CreatedAt.Add(604800*time.Second), first.Deadline)

	second, err := tm.registry.CreateProposal(ctx, testOwnerB, testTokenID, "CC-BY-4.0")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = tm.registry.Vote(ctx, testOwnerA, testTokenID, first.ID, true)
	require.NoError(t, err)
	_, err = tm.registry.Vote(ctx, testOwnerA, testTokenID, first.ID, true)
	assertRegistryError(t, domain.ErrAlreadyVoted, err)

	_, err = tm.registry.Vote(ctx, testOwnerA, testTokenID, second.ID, true)
	require.NoError(t, err)
	voted, err := tm.registry.Vote(ctx, testOwnerB, testTokenID, second.ID, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), voted.VoteCount)

	_, err = tm.registry.ExecuteProposal(ctx, testOwnerA, testTokenID, second.ID)
	assertRegistryError(t, domain.ErrVotingPeriodNotEnded, err)

	tm.now = testNow.Add(domain.VOTING_PERIOD)

	_, err = tm.registry.Vote(ctx, testOwnerB, testTokenID, first.ID, true)
	assertRegistryError(t, domain.ErrVotingClosed, err)

	_, err = tm.registry.ExecuteProposal(ctx, testOwnerA, testTokenID, first.ID)
	assertRegistryError(t, domain.ErrProposalRejected, err)
	lapsed, err := tm.registry.GetProposal(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, lapsed.Executed)
	assert.Equal(t, uint32(500), lapsed.VoteCount)
	assert.Equal(t, domain.ProposalStatusLapsed, lapsed.Status)

	executed, err := tm.registry.ExecuteProposal(ctx, testOwnerB, testTokenID, second.ID)
	require.NoError(t, err)
	assert.True(t, executed.Executed)

	_, err = tm.registry.ExecuteProposal(ctx, testOwnerB, testTokenID, second.ID)
	assertRegistryError(t, domain.ErrAlreadyExecuted, err)
}
