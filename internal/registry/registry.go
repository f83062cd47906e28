// Package registry implements the collective IP registry: the share ledger, royalty
// distribution, proposal governance and dispute routing.
//
// Every state-changing operation runs in a single store transaction. Authorization,
// validation and the mutation all happen inside it, so a rejected call leaves no trace.
// Registry events are published only after the transaction commits.
package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/messaging"
	"github.com/feral-file/ff-ip-registry/internal/payment"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

// ErrRolesNotInitialized is returned when an operation runs before Initialize
var ErrRolesNotInitialized = errors.New("registry roles are not initialized")

// Registry is the interface for the collective IP registry
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=Registry=MockRegistry
type Registry interface {
	// Initialize writes the process-wide roles on first start and returns the stored roles
	Initialize(ctx context.Context, roles domain.Roles) (*domain.Roles, error)
	// GetRoles retrieves the current roles
	GetRoles(ctx context.Context) (*domain.Roles, error)
	// SetDisputeResolver replaces the dispute resolver, administrator only
	SetDisputeResolver(ctx context.Context, caller domain.Address, newResolver domain.Address) (*domain.Roles, error)

	// RegisterIP registers an asset with its ownership partition, administrator only
	RegisterIP(ctx context.Context, caller domain.Address, input RegisterIPInput) (*schema.IPAsset, error)
	// GetIPMetadata retrieves a registered asset
	GetIPMetadata(ctx context.Context, tokenID domain.TokenID) (*schema.IPAsset, error)
	// GetOwner retrieves the owner at index in registration order
	GetOwner(ctx context.Context, tokenID domain.TokenID, index int) (domain.Address, error)
	// GetOwnershipShare retrieves the share of owner, 0 when owner holds none
	GetOwnershipShare(ctx context.Context, tokenID domain.TokenID, owner domain.Address) (uint32, error)
	// GetTotalSupply retrieves the total of the asset's shares
	GetTotalSupply(ctx context.Context, tokenID domain.TokenID) (uint32, error)
	// ListAssets lists registered assets, optionally restricted to one owner
	ListAssets(ctx context.Context, owner *domain.Address, limit int, offset uint64) ([]*schema.IPAsset, uint64, error)

	// DistributeRoyalties splits totalAmount across the asset's owners and settles the payouts, administrator only
	DistributeRoyalties(ctx context.Context, caller domain.Address, tokenID domain.TokenID, totalAmount *big.Int) (*schema.RoyaltyDistribution, error)
	// ListRoyaltyDistributions lists the distributions of an asset, newest first
	ListRoyaltyDistributions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.RoyaltyDistribution, uint64, error)
	// GetAccountBalance retrieves the royalties credited to an account
	GetAccountBalance(ctx context.Context, account domain.Address) (*big.Int, error)

	// CreateProposal opens a proposal on an asset, owners only
	CreateProposal(ctx context.Context, caller domain.Address, tokenID domain.TokenID, description string) (*ProposalDetail, error)
	// Vote casts the caller's weighted vote on a proposal, owners only, once per proposal
	Vote(ctx context.Context, caller domain.Address, tokenID domain.TokenID, proposalID uint64, support bool) (*ProposalDetail, error)
	// ExecuteProposal executes a proposal whose voting period ended with a majority of shares in favor
	ExecuteProposal(ctx context.Context, caller domain.Address, tokenID domain.TokenID, proposalID uint64) (*ProposalDetail, error)
	// GetProposal retrieves a proposal
	GetProposal(ctx context.Context, proposalID uint64) (*ProposalDetail, error)
	// ListProposals lists the proposals of an asset in creation order
	ListProposals(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*ProposalDetail, uint64, error)

	// ResolveDispute records a dispute resolution on an asset, dispute resolver only
	ResolveDispute(ctx context.Context, caller domain.Address, tokenID domain.TokenID, resolution string) (*schema.DisputeResolution, error)
	// ListDisputeResolutions lists the resolutions recorded for an asset
	ListDisputeResolutions(ctx context.Context, tokenID domain.TokenID, limit int, offset uint64) ([]*schema.DisputeResolution, uint64, error)

	// GetChanges pages the changes journal
	GetChanges(ctx context.Context, filter store.ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error)
}

// RegisterIPInput represents the data needed to register an asset
type RegisterIPInput struct {
	TokenID      domain.TokenID
	MetadataURI  string
	Owners       []domain.Address
	Shares       []uint32
	RoyaltyRate  uint32
	ExpiryDate   time.Time
	LicenseTerms string
}

// ProposalDetail is a proposal with its status at read time
type ProposalDetail struct {
	*schema.Proposal
	Status domain.ProposalStatus
}

type registry struct {
	store     store.Store
	publisher messaging.Publisher
	gateway   payment.Gateway
	clock     adapter.Clock
	denylist  access.Denylist
}

// NewRegistry creates a new registry
func NewRegistry(
	st store.Store,
	publisher messaging.Publisher,
	gateway payment.Gateway,
	clock adapter.Clock,
	denylist access.Denylist,
) Registry {
	return &registry{
		store:     st,
		publisher: publisher,
		gateway:   gateway,
		clock:     clock,
		denylist:  denylist,
	}
}

// now returns the current time at the second granularity stored for deadlines
func (r *registry) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Second)
}

func (r *registry) Initialize(ctx context.Context, roles domain.Roles) (*domain.Roles, error) {
	if roles.Administrator.IsZero() {
		return nil, fmt.Errorf("%w: administrator is required", domain.ErrInvalidAccount)
	}
	if roles.DisputeResolver.IsZero() {
		roles.DisputeResolver = roles.Administrator
	}

	stored, err := r.store.InitializeRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize roles: %w", err)
	}

	current := stored.Roles()
	if !current.Administrator.Equal(roles.Administrator) {
		logger.WarnCtx(ctx, "Configured administrator differs from the stored one, keeping the stored administrator",
			zap.String("configured", roles.Administrator.String()),
			zap.String("stored", current.Administrator.String()))
	}

	logger.InfoCtx(ctx, "Registry roles loaded",
		zap.String("administrator", current.Administrator.String()),
		zap.String("disputeResolver", current.DisputeResolver.String()))

	return &current, nil
}

func (r *registry) GetRoles(ctx context.Context) (*domain.Roles, error) {
	roles, err := loadRoles(ctx, r.store, false)
	if err != nil {
		return nil, err
	}
	return &roles, nil
}

func (r *registry) GetChanges(ctx context.Context, filter store.ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error) {
	changes, total, err := r.store.GetChanges(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get changes: %w", err)
	}
	return changes, total, nil
}

// loadRoles reads the roles through st, which may be a transaction
func loadRoles(ctx context.Context, st store.Store, forUpdate bool) (domain.Roles, error) {
	row, err := st.GetRoles(ctx, forUpdate)
	if err != nil {
		return domain.Roles{}, fmt.Errorf("failed to get roles: %w", err)
	}
	if row == nil {
		return domain.Roles{}, ErrRolesNotInitialized
	}
	return row.Roles(), nil
}

// loadAsset reads an asset through st and maps a missing asset to notFound
func loadAsset(ctx context.Context, st store.Store, tokenID domain.TokenID, forUpdate bool, notFound error) (*schema.IPAsset, error) {
	asset, err := st.GetIPAsset(ctx, tokenID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if asset == nil {
		return nil, notFound
	}
	return asset, nil
}

// rejected logs a rejected operation and hands back err unchanged
func rejected(ctx context.Context, operation string, caller domain.Address, err error) error {
	if _, ok := domain.AsRegistryError(err); ok {
		logger.DebugCtx(ctx, "Registry operation rejected",
			zap.String("operation", operation),
			zap.String("caller", caller.String()),
			zap.Error(err))
	}
	return err
}
