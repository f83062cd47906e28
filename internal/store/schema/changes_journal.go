package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// SubjectType represents the type of entity that was changed
type SubjectType string

const (
	// SubjectTypeAsset indicates a newly registered asset
	SubjectTypeAsset SubjectType = "asset"
	// SubjectTypeLicense indicates a change of an asset's license terms
	SubjectTypeLicense SubjectType = "license"
	// SubjectTypeRoyalty indicates a royalty distribution
	SubjectTypeRoyalty SubjectType = "royalty"
	// SubjectTypeProposal indicates a proposal was created or executed
	SubjectTypeProposal SubjectType = "proposal"
	// SubjectTypeVote indicates a vote was cast on a proposal
	SubjectTypeVote SubjectType = "vote"
	// SubjectTypeDispute indicates a dispute resolution was recorded
	SubjectTypeDispute SubjectType = "dispute"
	// SubjectTypeRole indicates a change of a registry role
	SubjectTypeRole SubjectType = "role"
)

// ChangesJournal represents the changes_journal table - audit log of every committed registry change
type ChangesJournal struct {
	// ID is an auto-incrementing sequence number for efficient pagination and ordering
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// SubjectType identifies what kind of entity changed
	SubjectType SubjectType `gorm:"column:subject_type;not null;type:text"`
	// SubjectID is the identifier of the changed entity (token id, proposal id, distribution id or role name)
	SubjectID string `gorm:"column:subject_id;not null;type:text"`
	// TokenID is the asset the change concerns, empty for role changes
	TokenID string `gorm:"column:token_id;type:text"`
	// Actor is the caller that performed the change
	Actor string `gorm:"column:actor;not null;type:text"`
	// ChangedAt is the timestamp when the change occurred
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
	// Meta contains additional context about the change as JSON
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}

// AssetChangeMeta is the journal meta of a registration
type AssetChangeMeta struct {
	MetadataURI string              `json:"metadata_uri"`
	RoyaltyRate uint32              `json:"royalty_rate"`
	Owners      []domain.OwnerShare `json:"owners"`
}

// LicenseChangeMeta is the journal meta of a license terms change
type LicenseChangeMeta struct {
	ProposalID uint64 `json:"proposal_id"`
	Old        string `json:"old"`
	New        string `json:"new"`
}

// RoyaltyChangeMeta is the journal meta of a royalty distribution
type RoyaltyChangeMeta struct {
	TotalAmount string            `json:"total_amount"`
	Payouts     map[string]string `json:"payouts"`
}

// ProposalChangeMeta is the journal meta of a proposal creation or execution
type ProposalChangeMeta struct {
	Description string    `json:"description"`
	VoteCount   uint32    `json:"vote_count"`
	Executed    bool      `json:"executed"`
	Deadline    time.Time `json:"deadline"`
}

// VoteChangeMeta is the journal meta of a vote
type VoteChangeMeta struct {
	Voter     string `json:"voter"`
	Support   bool   `json:"support"`
	Weight    uint32 `json:"weight"`
	VoteCount uint32 `json:"vote_count"`
}

// DisputeChangeMeta is the journal meta of a dispute resolution
type DisputeChangeMeta struct {
	Resolution string `json:"resolution"`
}

// RoleChangeMeta is the journal meta of a role change
type RoleChangeMeta struct {
	Role string `json:"role"`
	Old  string `json:"old"`
	New  string `json:"new"`
}
