package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/registry"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

// RolesResponse represents the registry roles
type RolesResponse struct {
	Administrator   string `json:"administrator"`
	DisputeResolver string `json:"dispute_resolver"`
}

// OwnerShareResponse represents one entry of an ownership partition
type OwnerShareResponse struct {
	Owner string `json:"owner"`
	Share uint32 `json:"share"`
}

// AssetResponse represents a registered asset
type AssetResponse struct {
	TokenID      string               `json:"token_id"`
	MetadataURI  string               `json:"metadata_uri"`
	Owners       []OwnerShareResponse `json:"owners"`
	RoyaltyRate  uint32               `json:"royalty_rate"`
	ExpiryDate   time.Time            `json:"expiry_date"`
	LicenseTerms string               `json:"license_terms"`
	TotalSupply  uint32               `json:"total_supply"`
	RegisteredBy string               `json:"registered_by"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// AssetListResponse represents a paginated list of assets
type AssetListResponse struct {
	Assets []AssetResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"` // Offset for the next page
	Total  uint64          `json:"total"`
}

// OwnerResponse represents the owner at an index of the partition
type OwnerResponse struct {
	TokenID string `json:"token_id"`
	Index   int    `json:"index"`
	Owner   string `json:"owner"`
}

// OwnershipShareResponse represents the share held by an account
type OwnershipShareResponse struct {
	TokenID string `json:"token_id"`
	Owner   string `json:"owner"`
	Share   uint32 `json:"share"`
}

// TotalSupplyResponse represents the total of an asset's shares
type TotalSupplyResponse struct {
	TokenID     string `json:"token_id"`
	TotalSupply uint32 `json:"total_supply"`
}

// RoyaltyPayoutResponse represents the amount paid to one owner
type RoyaltyPayoutResponse struct {
	Owner  string `json:"owner"`
	Share  uint32 `json:"share"`
	Amount string `json:"amount"`
}

// RoyaltyDistributionResponse represents a royalty distribution
type RoyaltyDistributionResponse struct {
	ID                  uint64                  `json:"id"`
	TokenID             string                  `json:"token_id"`
	TotalAmount         string                  `json:"total_amount"`
	DistributedBy       string                  `json:"distributed_by"`
	SettlementReference string                  `json:"settlement_reference,omitempty"`
	Payouts             []RoyaltyPayoutResponse `json:"payouts"`
	CreatedAt           time.Time               `json:"created_at"`
}

// RoyaltyDistributionListResponse represents a paginated list of distributions
type RoyaltyDistributionListResponse struct {
	Distributions []RoyaltyDistributionResponse `json:"items"`
	Offset        *uint64                       `json:"offset,omitempty"`
	Total         uint64                        `json:"total"`
}

// AccountBalanceResponse represents the royalties credited to an account
type AccountBalanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// VoteResponse represents a vote on a proposal
type VoteResponse struct {
	Voter     string    `json:"voter"`
	Support   bool      `json:"support"`
	Weight    uint32    `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// ProposalResponse represents a proposal with its status at read time
type ProposalResponse struct {
	ID          uint64                `json:"id"`
	TokenID     string                `json:"token_id"`
	Proposer    string                `json:"proposer"`
	Description string                `json:"description"`
	VoteCount   uint32                `json:"vote_count"`
	Executed    bool                  `json:"executed"`
	Status      domain.ProposalStatus `json:"status"`
	Deadline    time.Time             `json:"deadline"`
	ExecutedAt  *time.Time            `json:"executed_at,omitempty"`
	ExecutedBy  *string               `json:"executed_by,omitempty"`
	Votes       []VoteResponse        `json:"votes"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ProposalListResponse represents a paginated list of proposals
type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"items"`
	Offset    *uint64            `json:"offset,omitempty"`
	Total     uint64             `json:"total"`
}

// DisputeResolutionResponse represents a recorded dispute resolution
type DisputeResolutionResponse struct {
	ID         uint64    `json:"id"`
	TokenID    string    `json:"token_id"`
	Resolver   string    `json:"resolver"`
	Resolution string    `json:"resolution"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisputeResolutionListResponse represents a paginated list of dispute resolutions
type DisputeResolutionListResponse struct {
	Resolutions []DisputeResolutionResponse `json:"items"`
	Offset      *uint64                     `json:"offset,omitempty"`
	Total       uint64                      `json:"total"`
}

// ChangeResponse represents a change journal entry
type ChangeResponse struct {
	ID          uint64             `json:"id"`
	SubjectType schema.SubjectType `json:"subject_type"`
	SubjectID   string             `json:"subject_id"`
	TokenID     string             `json:"token_id,omitempty"`
	Actor       string             `json:"actor"`
	ChangedAt   time.Time          `json:"changed_at"`
	Meta        json.RawMessage    `json:"meta,omitempty"`
}

// ChangeListResponse represents a page of the changes journal
type ChangeListResponse struct {
	Changes    []ChangeResponse `json:"items"`
	NextAnchor *uint64          `json:"next_anchor,omitempty"` // ID-based cursor for the next page
	Total      uint64           `json:"total"`
}

// CreateWebhookClientResponse represents the response for creating a webhook client.
// The secret is only ever returned here.
type CreateWebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	WebhookURL       string    `json:"webhook_url"`
	WebhookSecret    string    `json:"webhook_secret"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NextOffset returns the offset of the next page, nil on the last page
func NextOffset(offset uint64, count int, total uint64) *uint64 {
	next := offset + uint64(count) //nolint:gosec,G115
	if count == 0 || next >= total {
		return nil
	}
	return &next
}

// MapRolesToDTO maps domain roles to RolesResponse
func MapRolesToDTO(roles *domain.Roles) *RolesResponse {
	return &RolesResponse{
		Administrator:   roles.Administrator.String(),
		DisputeResolver: roles.DisputeResolver.String(),
	}
}

// MapAssetToDTO maps a schema.IPAsset to AssetResponse
func MapAssetToDTO(asset *schema.IPAsset) *AssetResponse {
	owners := make([]OwnerShareResponse, len(asset.Owners))
	for i, o := range asset.Owners {
		owners[i] = OwnerShareResponse{Owner: o.OwnerAddress.String(), Share: o.Share}
	}

	return &AssetResponse{
		TokenID:      asset.TokenID.String(),
		MetadataURI:  asset.MetadataURI,
		Owners:       owners,
		RoyaltyRate:  asset.RoyaltyRate,
		ExpiryDate:   asset.ExpiryDate,
		LicenseTerms: asset.LicenseTerms,
		TotalSupply:  asset.TotalSupply,
		RegisteredBy: asset.RegisteredBy.String(),
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

// MapRoyaltyDistributionToDTO maps a schema.RoyaltyDistribution to RoyaltyDistributionResponse
func MapRoyaltyDistributionToDTO(distribution *schema.RoyaltyDistribution) *RoyaltyDistributionResponse {
	payouts := make([]RoyaltyPayoutResponse, len(distribution.Payouts))
	for i, p := range distribution.Payouts {
		payouts[i] = RoyaltyPayoutResponse{
			Owner:  p.OwnerAddress.String(),
			Share:  p.Share,
			Amount: p.Amount,
		}
	}

	return &RoyaltyDistributionResponse{
		ID:                  distribution.ID,
		TokenID:             distribution.TokenID.String(),
		TotalAmount:         distribution.TotalAmount,
		DistributedBy:       distribution.DistributedBy.String(),
		SettlementReference: distribution.SettlementReference,
		Payouts:             payouts,
		CreatedAt:           distribution.CreatedAt,
	}
}

// MapProposalToDTO maps a registry.ProposalDetail to ProposalResponse
func MapProposalToDTO(proposal *registry.ProposalDetail) *ProposalResponse {
	votes := make([]VoteResponse, len(proposal.Votes))
	for i, v := range proposal.Votes {
		votes[i] = VoteResponse{
			Voter:     v.Voter.String(),
			Support:   v.Support,
			Weight:    v.Weight,
			CreatedAt: v.CreatedAt,
		}
	}

	dto := &ProposalResponse{
		ID:          proposal.ID,
		TokenID:     proposal.TokenID.String(),
		Proposer:    proposal.Proposer.String(),
		Description: proposal.Description,
		VoteCount:   proposal.VoteCount,
		Executed:    proposal.Executed,
		Status:      proposal.Status,
		Deadline:    proposal.Deadline,
		ExecutedAt:  proposal.ExecutedAt,
		Votes:       votes,
		CreatedAt:   proposal.CreatedAt,
	}
	if proposal.ExecutedBy != nil {
		executedBy := proposal.ExecutedBy.String()
		dto.ExecutedBy = &executedBy
	}

	return dto
}

// MapDisputeResolutionToDTO maps a schema.DisputeResolution to DisputeResolutionResponse
func MapDisputeResolutionToDTO(resolution *schema.DisputeResolution) *DisputeResolutionResponse {
	return &DisputeResolutionResponse{
		ID:         resolution.ID,
		TokenID:    resolution.TokenID.String(),
		Resolver:   resolution.Resolver.String(),
		Resolution: resolution.Resolution,
		CreatedAt:  resolution.CreatedAt,
	}
}

// MapChangeToDTO maps a schema.ChangesJournal to ChangeResponse
func MapChangeToDTO(change *schema.ChangesJournal) *ChangeResponse {
	dto := &ChangeResponse{
		ID:          change.ID,
		SubjectType: change.SubjectType,
		SubjectID:   change.SubjectID,
		TokenID:     change.TokenID,
		Actor:       change.Actor,
		ChangedAt:   change.ChangedAt,
	}

	if change.Meta != nil {
		dto.Meta = json.RawMessage(change.Meta)
	}

	return dto
}
