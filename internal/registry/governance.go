package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

func (r *registry) CreateProposal(ctx context.Context, caller domain.Address, tokenID domain.TokenID, description string) (*ProposalDetail, error) {
	now := r.now()

	var proposal *schema.Proposal
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		owners, err := assetOwners(ctx, tx, tokenID)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, access.RoleAssetOwner, access.State{Owners: owners}); err != nil {
			return err
		}

		proposal, err = tx.CreateProposal(ctx, store.CreateProposalInput{
			TokenID:     tokenID,
			Proposer:    caller,
			Description: description,
			Deadline:    now.Add(domain.VOTING_PERIOD),
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("failed to create proposal: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "create_proposal", caller, err)
	}

	logger.InfoCtx(ctx, "Proposal created",
		zap.Uint64("proposalID", proposal.ID),
		zap.String("tokenID", tokenID.String()),
		zap.Time("deadline", proposal.Deadline))

	r.publish(ctx, &domain.RegistryEvent{
		EventType:  domain.EventTypeProposalCreated,
		TokenID:    tokenID,
		ProposalID: &proposal.ID,
		Actor:      caller,
		Timestamp:  now,
		Data: map[string]interface{}{
			"description": proposal.Description,
			"deadline":    proposal.Deadline,
		},
	})

	return r.detail(proposal, now), nil
}

func (r *registry) Vote(ctx context.Context, caller domain.Address, tokenID domain.TokenID, proposalID uint64, support bool) (*ProposalDetail, error) {
	now := r.now()

	var proposal *schema.Proposal
	var weight uint32
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		asset, err := tx.GetIPAsset(ctx, tokenID, false)
		if err != nil {
			return fmt.Errorf("failed to get asset: %w", err)
		}
		var owners []domain.Address
		if asset != nil {
			owners = asset.OwnerAddresses()
		}
		if err := access.Authorize(caller, access.RoleAssetOwner, access.State{Owners: owners}); err != nil {
			return err
		}

		// The proposal row lock serializes concurrent votes on the same proposal
		current, err := loadProposal(ctx, tx, tokenID, proposalID, true)
		if err != nil {
			return err
		}
		if current.HasVoted(caller) {
			return domain.ErrAlreadyVoted
		}
		if current.Executed || !now.Before(current.Deadline) {
			return domain.ErrVotingClosed
		}

		weight = asset.ShareOf(caller)
		proposal, err = tx.CreateVote(ctx, store.CreateVoteInput{
			ProposalID: proposalID,
			TokenID:    tokenID,
			Voter:      caller,
			Support:    support,
			Weight:     weight,
			VotedAt:    now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyVoted) {
				return domain.ErrAlreadyVoted
			}
			return fmt.Errorf("failed to record vote: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "vote", caller, err)
	}

	logger.InfoCtx(ctx, "Vote cast",
		zap.Uint64("proposalID", proposalID),
		zap.String("voter", caller.String()),
		zap.Bool("support", support),
		zap.Uint32("weight", weight),
		zap.Uint32("voteCount", proposal.VoteCount))

	r.publish(ctx, &domain.RegistryEvent{
		EventType:  domain.EventTypeVoteCast,
		TokenID:    tokenID,
		ProposalID: &proposal.ID,
		Actor:      caller,
		Timestamp:  now,
		Data: map[string]interface{}{
			"support":    support,
			"weight":     weight,
			"vote_count": proposal.VoteCount,
		},
	})

	return r.detail(proposal, now), nil
}

func (r *registry) ExecuteProposal(ctx context.Context, caller domain.Address, tokenID domain.TokenID, proposalID uint64) (*ProposalDetail, error) {
	now := r.now()

	var proposal *schema.Proposal
	err := r.store.WithTx(ctx, func(tx store.Store) error {
		current, err := loadProposal(ctx, tx, tokenID, proposalID, true)
		if err != nil {
			return err
		}
		if now.Before(current.Deadline) {
			return domain.ErrVotingPeriodNotEnded
		}
		if current.Executed {
			return domain.ErrAlreadyExecuted
		}
		if !MeetsThreshold(current.VoteCount) {
			return fmt.Errorf("%w: %d of %d shares in favor", domain.ErrProposalRejected, current.VoteCount, domain.TOTAL_SHARES)
		}

		proposal, err = tx.MarkProposalExecuted(ctx, store.MarkProposalExecutedInput{
			ProposalID:   proposalID,
			TokenID:      tokenID,
			LicenseTerms: current.Description,
			ExecutedBy:   caller,
			ExecutedAt:   now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExecuted) {
				return domain.ErrAlreadyExecuted
			}
			return fmt.Errorf("failed to execute proposal: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, rejected(ctx, "execute_proposal", caller, err)
	}

	logger.InfoCtx(ctx, "Proposal executed",
		zap.Uint64("proposalID", proposalID),
		zap.String("tokenID", tokenID.String()),
		zap.Uint32("voteCount", proposal.VoteCount))

	r.publish(ctx, &domain.RegistryEvent{
		EventType:  domain.EventTypeProposalExecuted,
		TokenID:    tokenID,
		ProposalID: &proposal.ID,
		Actor:      caller,
		Timestamp:  now,
		Data: map[string]interface{}{
			"vote_count":    proposal.VoteCount,
			"license_terms": proposal.Description,
		},
	})

	return r.detail(proposal, now), nil
}

func (r *registry) GetProposal(ctx context.Context, proposalID uint64) (*ProposalDetail, error) {
	proposal, err := r.store.GetProposal(ctx, proposalID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	if proposal == nil {
		return nil, domain.ErrProposalNotFound
	}
	return r.detail(proposal, r.now()), nil
}

func (r *registry) ListProposals(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*ProposalDetail, uint64, error) {
	proposals, total, err := r.store.GetProposalsByTokenID(ctx, tokenID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get proposals: %w", err)
	}

	now := r.now()
	details := make([]*ProposalDetail, len(proposals))
	for i, p := range proposals {
		details[i] = r.detail(p, now)
	}
	return details, total, nil
}

func (r *registry) detail(proposal *schema.Proposal, now time.Time) *ProposalDetail {
	return &ProposalDetail{
		Proposal: proposal,
		Status:   domain.ProposalStatusAt(proposal.Executed, proposal.Deadline, now),
	}
}

// assetOwners returns the owners of an asset, none when it is not registered
func assetOwners(ctx context.Context, st store.Store, tokenID domain.TokenID) ([]domain.Address, error) {
	asset, err := st.GetIPAsset(ctx, tokenID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if asset == nil {
		return nil, nil
	}
	return asset.OwnerAddresses(), nil
}

// loadProposal reads a proposal and rejects one that targets another asset
func loadProposal(ctx context.Context, st store.Store, tokenID domain.TokenID, proposalID uint64, forUpdate bool) (*schema.Proposal, error) {
	proposal, err := st.GetProposal(ctx, proposalID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	if proposal == nil || proposal.TokenID != tokenID {
		return nil, domain.ErrProposalNotFound
	}
	return proposal, nil
}
