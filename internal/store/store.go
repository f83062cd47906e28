package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// WithTx runs fn inside a single database transaction. Every call made on the
	// Store handed to fn joins that transaction; any error returned by fn rolls it back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// =============================================================================
	// Roles
	// =============================================================================

	// InitializeRoles writes the roles row if it does not exist yet and returns the stored roles
	InitializeRoles(ctx context.Context, roles domain.Roles) (*schema.RegistryRoles, error)
	// GetRoles retrieves the registry roles, nil if they were never initialized
	GetRoles(ctx context.Context, forUpdate bool) (*schema.RegistryRoles, error)
	// UpdateDisputeResolver replaces the dispute resolver and journals the change
	UpdateDisputeResolver(ctx context.Context, input UpdateDisputeResolverInput) (*schema.RegistryRoles, error)

	// =============================================================================
	// Assets
	// =============================================================================

	// GetIPAsset retrieves an asset with its owners in insertion order, nil if absent
	GetIPAsset(ctx context.Context, tokenID domain.TokenID, forUpdate bool) (*schema.IPAsset, error)
	// CreateIPAsset inserts an asset with its ownership partition and journals the registration
	CreateIPAsset(ctx context.Context, input CreateIPAssetInput) (*schema.IPAsset, error)
	// ListIPAssets retrieves assets ordered by registration time
	ListIPAssets(ctx context.Context, filter IPAssetQueryFilter) ([]*schema.IPAsset, uint64, error)

	// =============================================================================
	// Royalties
	// =============================================================================

	// CreateRoyaltyDistribution records a distribution with its payouts, credits every
	// payout to the owner's account balance and journals the distribution
	CreateRoyaltyDistribution(ctx context.Context, input CreateRoyaltyDistributionInput) (*schema.RoyaltyDistribution, error)
	// GetRoyaltyDistributions retrieves the distributions of an asset, newest first
	GetRoyaltyDistributions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.RoyaltyDistribution, uint64, error)
	// GetAccountBalance retrieves the credited royalty balance of an account, "0" if never credited
	GetAccountBalance(ctx context.Context, owner domain.Address) (string, error)

	// =============================================================================
	// Governance
	// =============================================================================

	// CreateProposal inserts a proposal and journals it
	CreateProposal(ctx context.Context, input CreateProposalInput) (*schema.Proposal, error)
	// GetProposal retrieves a proposal with its votes, nil if absent
	GetProposal(ctx context.Context, proposalID uint64, forUpdate bool) (*schema.Proposal, error)
	// GetProposalsByTokenID retrieves the proposals of an asset in creation order
	GetProposalsByTokenID(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.Proposal, uint64, error)
	// CreateVote records a vote, adds its weight to the tally when it supports the proposal,
	// journals it and returns the updated proposal
	CreateVote(ctx context.Context, input CreateVoteInput) (*schema.Proposal, error)
	// MarkProposalExecuted flags a proposal as executed, rewrites the asset's license terms
	// with the proposal description and journals both changes
	MarkProposalExecuted(ctx context.Context, input MarkProposalExecutedInput) (*schema.Proposal, error)

	// =============================================================================
	// Disputes
	// =============================================================================

	// CreateDisputeResolution records a dispute resolution and journals it
	CreateDisputeResolution(ctx context.Context, input CreateDisputeResolutionInput) (*schema.DisputeResolution, error)
	// GetDisputeResolutions retrieves the resolutions recorded for an asset in recording order
	GetDisputeResolutions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.DisputeResolution, uint64, error)

	// =============================================================================
	// Changes journal
	// =============================================================================

	// GetChanges retrieves journal entries with optional filters and cursor pagination
	GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error)

	// =============================================================================
	// Webhooks
	// =============================================================================

	// GetActiveWebhookClientsByEventType retrieves active webhook clients that match the given event type
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)
	// GetWebhookClientByID retrieves a webhook client by client ID
	GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error)
	// CreateWebhookClient creates a new webhook client
	CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error)
	// CreateWebhookDelivery creates a new webhook delivery record
	CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error
	// HasSuccessfulWebhookDelivery reports whether the event already reached the client
	HasSuccessfulWebhookDelivery(ctx context.Context, clientID string, eventID string) (bool, error)
	// UpdateWebhookDeliveryStatus updates the status and result of a webhook delivery
	UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error
}

// UpdateDisputeResolverInput represents the data needed to replace the dispute resolver
type UpdateDisputeResolverInput struct {
	DisputeResolver domain.Address
	UpdatedBy       domain.Address
	UpdatedAt       time.Time
}

// CreateIPAssetInput represents the data needed to register an asset
type CreateIPAssetInput struct {
	TokenID      domain.TokenID
	MetadataURI  string
	RoyaltyRate  uint32
	ExpiryDate   time.Time
	LicenseTerms string
	Owners       []domain.OwnerShare
	RegisteredBy domain.Address
	RegisteredAt time.Time
}

// IPAssetQueryFilter represents filters for listing assets
type IPAssetQueryFilter struct {
	// Owner restricts the result to assets held by this account
	Owner *domain.Address
	// Limit is the maximum number of assets to return
	Limit int
	// Offset is the number of assets to skip
	Offset uint64
}

// RoyaltyPayoutInput is the amount owed to a single owner in a distribution
type RoyaltyPayoutInput struct {
	Position int
	Owner    domain.Address
	Share    uint32
	Amount   string
}

// CreateRoyaltyDistributionInput represents the data needed to record a royalty distribution
type CreateRoyaltyDistributionInput struct {
	TokenID             domain.TokenID
	TotalAmount         string
	Payouts             []RoyaltyPayoutInput
	SettlementReference string
	DistributedBy       domain.Address
	DistributedAt       time.Time
}

// CreateProposalInput represents the data needed to create a proposal
type CreateProposalInput struct {
	TokenID     domain.TokenID
	Proposer    domain.Address
	Description string
	Deadline    time.Time
	CreatedAt   time.Time
}

// CreateVoteInput represents the data needed to record a vote
type CreateVoteInput struct {
	ProposalID uint64
	TokenID    domain.TokenID
	Voter      domain.Address
	Support    bool
	Weight     uint32
	VotedAt    time.Time
}

// MarkProposalExecutedInput represents the data needed to execute a proposal
type MarkProposalExecutedInput struct {
	ProposalID uint64
	TokenID    domain.TokenID
	// LicenseTerms replaces the asset's license terms
	LicenseTerms string
	ExecutedBy   domain.Address
	ExecutedAt   time.Time
}

// CreateDisputeResolutionInput represents the data needed to record a dispute resolution
type CreateDisputeResolutionInput struct {
	TokenID    domain.TokenID
	Resolver   domain.Address
	Resolution string
	ResolvedAt time.Time
}

// ChangesQueryFilter represents filters for querying the changes journal
type ChangesQueryFilter struct {
	// TokenIDs restricts the result to changes of these assets
	TokenIDs []domain.TokenID
	// SubjectTypes restricts the result to these kinds of changes
	SubjectTypes []schema.SubjectType
	// Actors restricts the result to changes made by these callers
	Actors []domain.Address
	// Anchor is the ID of the last change already seen; only later changes are returned
	Anchor *uint64
	// Limit is the maximum number of changes to return
	Limit int
}

// CreateWebhookClientInput represents the data needed to create a webhook client
type CreateWebhookClientInput struct {
	ClientID         string
	WebhookURL       string
	WebhookSecret    string
	EventFilters     datatypes.JSON
	IsActive         bool
	RetryMaxAttempts int
}
