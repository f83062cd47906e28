package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// WithTx runs fn inside a database transaction bound to a transactional store
func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// lock adds a row lock to the query when forUpdate is set
func lock(query *gorm.DB, forUpdate bool) *gorm.DB {
	if forUpdate {
		return query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// createChangeJournal appends an entry to the changes journal within tx
func createChangeJournal(tx *gorm.DB, subjectType schema.SubjectType, subjectID string, tokenID domain.TokenID, actor domain.Address, changedAt time.Time, meta interface{}) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal change journal meta: %w", err)
	}

	changeJournal := schema.ChangesJournal{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		TokenID:     tokenID.String(),
		Actor:       actor.String(),
		ChangedAt:   changedAt,
		Meta:        metaJSON,
	}
	if err := tx.Create(&changeJournal).Error; err != nil {
		return fmt.Errorf("failed to create change journal: %w", err)
	}

	return nil
}

// =============================================================================
// Roles
// =============================================================================

// InitializeRoles writes the roles row if it does not exist yet and returns the stored roles
func (s *pgStore) InitializeRoles(ctx context.Context, roles domain.Roles) (*schema.RegistryRoles, error) {
	var stored schema.RegistryRoles
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := schema.RegistryRoles{
			ID:              schema.RegistryRolesID,
			Administrator:   roles.Administrator,
			DisputeResolver: roles.DisputeResolver,
		}

		// The administrator is written once; an existing row always wins
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to initialize roles: %w", err)
		}

		if err := tx.Where("id = ?", schema.RegistryRolesID).First(&stored).Error; err != nil {
			return fmt.Errorf("failed to get roles: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetRoles retrieves the registry roles, nil if they were never initialized
func (s *pgStore) GetRoles(ctx context.Context, forUpdate bool) (*schema.RegistryRoles, error) {
	var roles schema.RegistryRoles
	err := lock(s.db.WithContext(ctx), forUpdate).
		Where("id = ?", schema.RegistryRolesID).
		First(&roles).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return &roles, nil
}

// UpdateDisputeResolver replaces the dispute resolver and journals the change
func (s *pgStore) UpdateDisputeResolver(ctx context.Context, input UpdateDisputeResolverInput) (*schema.RegistryRoles, error) {
	var roles schema.RegistryRoles
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", schema.RegistryRolesID).
			First(&roles).Error; err != nil {
			return fmt.Errorf("failed to get roles: %w", err)
		}

		old := roles.DisputeResolver
		if err := tx.Model(&roles).Updates(map[string]interface{}{
			"dispute_resolver": input.DisputeResolver,
			"updated_at":       input.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update dispute resolver: %w", err)
		}

		return createChangeJournal(tx,
			schema.SubjectTypeRole,
			"dispute_resolver",
			"",
			input.UpdatedBy,
			input.UpdatedAt,
			schema.RoleChangeMeta{
				Role: "dispute_resolver",
				Old:  old.String(),
				New:  input.DisputeResolver.String(),
			})
	})
	if err != nil {
		return nil, err
	}

	roles.DisputeResolver = input.DisputeResolver
	roles.UpdatedAt = input.UpdatedAt
	return &roles, nil
}

// =============================================================================
// Assets
// =============================================================================

func preloadOwners(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GetIPAsset retrieves an asset with its owners in insertion order, nil if absent
func (s *pgStore) GetIPAsset(ctx context.Context, tokenID domain.TokenID, forUpdate bool) (*schema.IPAsset, error) {
	var asset schema.IPAsset
	err := lock(s.db.WithContext(ctx), forUpdate).
		Preload("Owners", preloadOwners).
		Where("token_id = ?", tokenID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ip asset: %w", err)
	}
	return &asset, nil
}

// CreateIPAsset inserts an asset with its ownership partition and journals the registration.
// A token id that is already registered yields domain.ErrAlreadyRegistered.
func (s *pgStore) CreateIPAsset(ctx context.Context, input CreateIPAssetInput) (*schema.IPAsset, error) {
	var totalSupply uint32
	for _, o := range input.Owners {
		totalSupply += o.Share
	}

	asset := schema.IPAsset{
		TokenID:      input.TokenID,
		MetadataURI:  input.MetadataURI,
		RoyaltyRate:  input.RoyaltyRate,
		ExpiryDate:   input.ExpiryDate,
		LicenseTerms: input.LicenseTerms,
		TotalSupply:  totalSupply,
		RegisteredBy: input.RegisteredBy,
		CreatedAt:    input.RegisteredAt,
		UpdatedAt:    input.RegisteredAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Use ON CONFLICT DO NOTHING so a concurrent registration of the same token id
		// is reported as a rejection instead of a database error
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoNothing: true,
		}).Omit("Owners").Create(&asset)
		if result.Error != nil {
			return fmt.Errorf("failed to create ip asset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyRegistered
		}

		owners := make([]schema.IPAssetOwner, len(input.Owners))
		for i, o := range input.Owners {
			owners[i] = schema.IPAssetOwner{
				TokenID:      input.TokenID,
				Position:     i,
				OwnerAddress: o.Owner,
				Share:        o.Share,
			}
		}
		if len(owners) > 0 {
			if err := tx.Create(&owners).Error; err != nil {
				return fmt.Errorf("failed to create ip asset owners: %w", err)
			}
		}
		asset.Owners = owners

		return createChangeJournal(tx,
			schema.SubjectTypeAsset,
			input.TokenID.String(),
			input.TokenID,
			input.RegisteredBy,
			input.RegisteredAt,
			schema.AssetChangeMeta{
				MetadataURI: input.MetadataURI,
				RoyaltyRate: input.RoyaltyRate,
				Owners:      input.Owners,
			})
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// ListIPAssets retrieves assets ordered by registration time
func (s *pgStore) ListIPAssets(ctx context.Context, filter IPAssetQueryFilter) ([]*schema.IPAsset, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.IPAsset{})

	if filter.Owner != nil {
		query = query.Where("EXISTS (SELECT 1 FROM ip_asset_owners o WHERE o.token_id = ip_assets.token_id AND o.owner_address = ?)", *filter.Owner)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ip assets: %w", err)
	}

	query = query.Preload("Owners", preloadOwners).Order("created_at ASC, token_id ASC")
	if filter.Offset > 0 {
		query = query.Offset(int(filter.Offset)) //nolint:gosec,G115
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var assets []*schema.IPAsset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ip assets: %w", err)
	}

	return assets, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Royalties
// =============================================================================

// CreateRoyaltyDistribution records a distribution with its payouts and credits every payout
// to the owner's account balance
func (s *pgStore) CreateRoyaltyDistribution(ctx context.Context, input CreateRoyaltyDistributionInput) (*schema.RoyaltyDistribution, error) {
	distribution := schema.RoyaltyDistribution{
		TokenID:             input.TokenID,
		TotalAmount:         input.TotalAmount,
		DistributedBy:       input.DistributedBy,
		SettlementReference: input.SettlementReference,
		CreatedAt:           input.DistributedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Payouts").Create(&distribution).Error; err != nil {
			return fmt.Errorf("failed to create royalty distribution: %w", err)
		}

		payouts := make([]schema.RoyaltyPayout, len(input.Payouts))
		summary := make(map[string]string, len(input.Payouts))
		for i, p := range input.Payouts {
			payouts[i] = schema.RoyaltyPayout{
				DistributionID: distribution.ID,
				Position:       p.Position,
				OwnerAddress:   p.Owner,
				Share:          p.Share,
				Amount:         p.Amount,
			}
			summary[p.Owner.String()] = p.Amount
		}
		if len(payouts) > 0 {
			if err := tx.Create(&payouts).Error; err != nil {
				return fmt.Errorf("failed to create royalty payouts: %w", err)
			}
		}
		distribution.Payouts = payouts

		// Credit each owner; the upsert accumulates into the existing balance
		for _, p := range input.Payouts {
			balance := schema.AccountBalance{
				OwnerAddress: p.Owner,
				Balance:      p.Amount,
				UpdatedAt:    input.DistributedAt,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "owner_address"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"balance":    gorm.Expr("account_balances.balance + EXCLUDED.balance"),
					"updated_at": gorm.Expr("EXCLUDED.updated_at"),
				}),
			}).Create(&balance).Error; err != nil {
				return fmt.Errorf("failed to credit account balance: %w", err)
			}
		}

		return createChangeJournal(tx,
			schema.SubjectTypeRoyalty,
			strconv.FormatUint(distribution.ID, 10),
			input.TokenID,
			input.DistributedBy,
			input.DistributedAt,
			schema.RoyaltyChangeMeta{
				TotalAmount: input.TotalAmount,
				Payouts:     summary,
			})
	})
	if err != nil {
		return nil, err
	}

	return &distribution, nil
}

// GetRoyaltyDistributions retrieves the distributions of an asset, newest first
func (s *pgStore) GetRoyaltyDistributions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.RoyaltyDistribution, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.RoyaltyDistribution{}).Where("token_id = ?", tokenID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count royalty distributions: %w", err)
	}

	query = query.Preload("Payouts", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("id DESC")
	if offset > 0 {
		query = query.Offset(int(offset)) //nolint:gosec,G115
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var distributions []*schema.RoyaltyDistribution
	if err := query.Find(&distributions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get royalty distributions: %w", err)
	}

	return distributions, uint64(total), nil //nolint:gosec,G115
}

// GetAccountBalance retrieves the credited royalty balance of an account, "0" if never credited
func (s *pgStore) GetAccountBalance(ctx context.Context, owner domain.Address) (string, error) {
	var balance schema.AccountBalance
	err := s.db.WithContext(ctx).Where("owner_address = ?", owner).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "0", nil
		}
		return "", fmt.Errorf("failed to get account balance: %w", err)
	}
	return balance.Balance, nil
}

// =============================================================================
// Governance
// =============================================================================

func preloadVotes(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// CreateProposal inserts a proposal and journals it
func (s *pgStore) CreateProposal(ctx context.Context, input CreateProposalInput) (*schema.Proposal, error) {
	proposal := schema.Proposal{
		TokenID:     input.TokenID,
		Proposer:    input.Proposer,
		Description: input.Description,
		VoteCount:   0,
		Executed:    false,
		Deadline:    input.Deadline,
		CreatedAt:   input.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Votes").Create(&proposal).Error; err != nil {
			return fmt.Errorf("failed to create proposal: %w", err)
		}

		return createChangeJournal(tx,
			schema.SubjectTypeProposal,
			strconv.FormatUint(proposal.ID, 10),
			input.TokenID,
			input.Proposer,
			input.CreatedAt,
			schema.ProposalChangeMeta{
				Description: input.Description,
				Deadline:    input.Deadline,
			})
	})
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

// GetProposal retrieves a proposal with its votes, nil if absent
func (s *pgStore) GetProposal(ctx context.Context, proposalID uint64, forUpdate bool) (*schema.Proposal, error) {
	var proposal schema.Proposal
	err := lock(s.db.WithContext(ctx), forUpdate).
		Preload("Votes", preloadVotes).
		Where("id = ?", proposalID).
		First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return &proposal, nil
}

// GetProposalsByTokenID retrieves the proposals of an asset in creation order
func (s *pgStore) GetProposalsByTokenID(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.Proposal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Proposal{}).Where("token_id = ?", tokenID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count proposals: %w", err)
	}

	query = query.Preload("Votes", preloadVotes).Order("id ASC")
	if offset > 0 {
		query = query.Offset(int(offset)) //nolint:gosec,G115
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var proposals []*schema.Proposal
	if err := query.Find(&proposals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get proposals: %w", err)
	}

	return proposals, uint64(total), nil //nolint:gosec,G115
}

// CreateVote records a vote and, when it supports the proposal, adds its weight to the tally.
// A second vote by the same voter yields domain.ErrAlreadyVoted.
func (s *pgStore) CreateVote(ctx context.Context, input CreateVoteInput) (*schema.Proposal, error) {
	var proposal schema.Proposal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := schema.ProposalVote{
			ProposalID: input.ProposalID,
			Voter:      input.Voter,
			Support:    input.Support,
			Weight:     input.Weight,
			CreatedAt:  input.VotedAt,
		}

		// The (proposal_id, voter) unique index is the last line against double voting
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "proposal_id"}, {Name: "voter"}},
			DoNothing: true,
		}).Create(&vote)
		if result.Error != nil {
			return fmt.Errorf("failed to create vote: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyVoted
		}

		if input.Support && input.Weight > 0 {
			if err := tx.Model(&schema.Proposal{}).
				Where("id = ?", input.ProposalID).
				Update("vote_count", gorm.Expr("vote_count + ?", input.Weight)).Error; err != nil {
				return fmt.Errorf("failed to update vote count: %w", err)
			}
		}

		if err := tx.Preload("Votes", preloadVotes).
			Where("id = ?", input.ProposalID).
			First(&proposal).Error; err != nil {
			return fmt.Errorf("failed to get proposal: %w", err)
		}

		return createChangeJournal(tx,
			schema.SubjectTypeVote,
			strconv.FormatUint(input.ProposalID, 10),
			input.TokenID,
			input.Voter,
			input.VotedAt,
			schema.VoteChangeMeta{
				Voter:     input.Voter.String(),
				Support:   input.Support,
				Weight:    input.Weight,
				VoteCount: proposal.VoteCount,
			})
	})
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

// MarkProposalExecuted flags a proposal as executed and rewrites the asset's license terms
// with the given terms. A proposal that is already executed yields domain.ErrAlreadyExecuted.
func (s *pgStore) MarkProposalExecuted(ctx context.Context, input MarkProposalExecutedInput) (*schema.Proposal, error) {
	var proposal schema.Proposal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guard on executed = false so the flag flips exactly once
		result := tx.Model(&schema.Proposal{}).
			Where("id = ? AND executed = ?", input.ProposalID, false).
			Updates(map[string]interface{}{
				"executed":    true,
				"executed_at": input.ExecutedAt,
				"executed_by": input.ExecutedBy,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark proposal executed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyExecuted
		}

		var asset schema.IPAsset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token_id = ?", input.TokenID).
			First(&asset).Error; err != nil {
			return fmt.Errorf("failed to get ip asset: %w", err)
		}

		oldTerms := asset.LicenseTerms
		if err := tx.Model(&schema.IPAsset{}).
			Where("token_id = ?", input.TokenID).
			Updates(map[string]interface{}{
				"license_terms": input.LicenseTerms,
				"updated_at":    input.ExecutedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to update license terms: %w", err)
		}

		if err := tx.Preload("Votes", preloadVotes).
			Where("id = ?", input.ProposalID).
			First(&proposal).Error; err != nil {
			return fmt.Errorf("failed to get proposal: %w", err)
		}

		if err := createChangeJournal(tx,
			schema.SubjectTypeProposal,
			strconv.FormatUint(input.ProposalID, 10),
			input.TokenID,
			input.ExecutedBy,
			input.ExecutedAt,
			schema.ProposalChangeMeta{
				Description: proposal.Description,
				VoteCount:   proposal.VoteCount,
				Executed:    true,
				Deadline:    proposal.Deadline,
			}); err != nil {
			return err
		}

		return createChangeJournal(tx,
			schema.SubjectTypeLicense,
			input.TokenID.String(),
			input.TokenID,
			input.ExecutedBy,
			input.ExecutedAt,
			schema.LicenseChangeMeta{
				ProposalID: input.ProposalID,
				Old:        oldTerms,
				New:        input.LicenseTerms,
			})
	})
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

// =============================================================================
// Disputes
// =============================================================================

// CreateDisputeResolution records a dispute resolution and journals it
func (s *pgStore) CreateDisputeResolution(ctx context.Context, input CreateDisputeResolutionInput) (*schema.DisputeResolution, error) {
	resolution := schema.DisputeResolution{
		TokenID:    input.TokenID,
		Resolver:   input.Resolver,
		Resolution: input.Resolution,
		CreatedAt:  input.ResolvedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resolution).Error; err != nil {
			return fmt.Errorf("failed to create dispute resolution: %w", err)
		}

		return createChangeJournal(tx,
			schema.SubjectTypeDispute,
			strconv.FormatUint(resolution.ID, 10),
			input.TokenID,
			input.Resolver,
			input.ResolvedAt,
			schema.DisputeChangeMeta{Resolution: input.Resolution})
	})
	if err != nil {
		return nil, err
	}

	return &resolution, nil
}

// GetDisputeResolutions retrieves the resolutions recorded for an asset in recording order
func (s *pgStore) GetDisputeResolutions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.DisputeResolution, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.DisputeResolution{}).Where("token_id = ?", tokenID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count dispute resolutions: %w", err)
	}

	query = query.Order("id ASC")
	if offset > 0 {
		query = query.Offset(int(offset)) //nolint:gosec,G115
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var resolutions []*schema.DisputeResolution
	if err := query.Find(&resolutions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get dispute resolutions: %w", err)
	}

	return resolutions, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Changes journal
// =============================================================================

// GetChanges retrieves changes with optional filters and cursor pagination
func (s *pgStore) GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.ChangesJournal{})

	if len(filter.TokenIDs) > 0 {
		query = query.Where("token_id IN ?", filter.TokenIDs)
	}
	if len(filter.SubjectTypes) > 0 {
		query = query.Where("subject_type IN ?", filter.SubjectTypes)
	}
	if len(filter.Actors) > 0 {
		query = query.Where("actor IN ?", filter.Actors)
	}

	// Count before applying the anchor so the total describes the whole filtered log
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count changes: %w", err)
	}

	if filter.Anchor != nil {
		query = query.Where("id > ?", *filter.Anchor)
	}

	query = query.Order("id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var changes []*schema.ChangesJournal
	if err := query.Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query changes: %w", err)
	}

	return changes, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Webhooks
// =============================================================================

// GetActiveWebhookClientsByEventType retrieves active webhook clients that match the given event type
func (s *pgStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	filter, err := json.Marshal([]string{eventType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event filter: %w", err)
	}

	// JSONB containment: event_filters holds the event type or the "*" wildcard
	err = s.db.WithContext(ctx).
		Where("is_active").
		Where("event_filters @> ?::jsonb OR event_filters @> ?::jsonb", string(filter), `["*"]`).
		Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook clients by event type: %w", err)
	}

	return clients, nil
}

// GetWebhookClientByID retrieves a webhook client by client ID
func (s *pgStore) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	var client schema.WebhookClient
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get webhook client: %w", err)
	}
	return &client, nil
}

// CreateWebhookClient creates a new webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	now := time.Now()
	client := &schema.WebhookClient{
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     input.EventFilters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// CreateWebhookDelivery creates a new webhook delivery record
func (s *pgStore) CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error {
	if err := s.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return fmt.Errorf("failed to create webhook delivery: %w", err)
	}
	return nil
}

// HasSuccessfulWebhookDelivery reports whether the event already reached the client
func (s *pgStore) HasSuccessfulWebhookDelivery(ctx context.Context, clientID string, eventID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("client_id = ? AND event_id = ? AND delivery_status = ?", clientID, eventID, schema.WebhookDeliveryStatusSuccess).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check webhook delivery: %w", err)
	}
	return count > 0, nil
}

// maxDeliveryErrorLength bounds the stored error message of a delivery
const maxDeliveryErrorLength = 1024

// UpdateWebhookDeliveryStatus updates the status and result of a webhook delivery
func (s *pgStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"delivery_status": status,
		"attempts":        attempts,
		"response_body":   responseBody,
		"last_attempt_at": now,
		"updated_at":      now,
	}

	if responseStatus != nil {
		updates["response_status"] = *responseStatus
	}
	if errorMessage != "" {
		if len(errorMessage) > maxDeliveryErrorLength {
			errorMessage = errorMessage[:maxDeliveryErrorLength]
		}
		updates["error_message"] = errorMessage
	}

	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("id = ?", deliveryID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update webhook delivery status: %w", err)
	}

	return nil
}
