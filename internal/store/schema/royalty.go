package schema

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// RoyaltyDistribution represents the royalty_distributions table - one row per distribute call
type RoyaltyDistribution struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the asset whose owners were paid
	TokenID domain.TokenID `gorm:"column:token_id;not null;type:text;index"`
	// TotalAmount is the distributed amount (stored as string to support up to 78 digits)
	TotalAmount string `gorm:"column:total_amount;not null;type:numeric(78,0)"`
	// DistributedBy is the administrator that triggered the distribution
	DistributedBy domain.Address `gorm:"column:distributed_by;not null;type:text"`
	// SettlementReference is the payment collaborator's reference for the batch, if any
	SettlementReference string `gorm:"column:settlement_reference;type:text"`
	// CreatedAt is the distribution time
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`

	// Associations
	Payouts []RoyaltyPayout `gorm:"foreignKey:DistributionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the RoyaltyDistribution model
func (RoyaltyDistribution) TableName() string {
	return "royalty_distributions"
}

// RoyaltyPayout represents the royalty_payouts table - one row per owner per distribution
type RoyaltyPayout struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// DistributionID references the distribution
	DistributionID uint64 `gorm:"column:distribution_id;not null;uniqueIndex:idx_royalty_payouts_distribution_position,priority:1"`
	// Position is the owner's insertion index in the asset
	Position int `gorm:"column:position;not null;uniqueIndex:idx_royalty_payouts_distribution_position,priority:2"`
	// OwnerAddress is the paid owner
	OwnerAddress domain.Address `gorm:"column:owner_address;not null;type:text"`
	// Share is the owner's share used for the computation
	Share uint32 `gorm:"column:share;not null"`
	// Amount is the paid amount, including any rounding remainder
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
}

// TableName specifies the table name for the RoyaltyPayout model
func (RoyaltyPayout) TableName() string {
	return "royalty_payouts"
}

// AccountBalance represents the account_balances table - royalties credited per account
type AccountBalance struct {
	// OwnerAddress is the credited account
	OwnerAddress domain.Address `gorm:"column:owner_address;primaryKey;type:text"`
	// Balance is the cumulative credited amount
	Balance string `gorm:"column:balance;not null;type:numeric(78,0)"`
	// UpdatedAt is the timestamp of the last credit
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AccountBalance model
func (AccountBalance) TableName() string {
	return "account_balances"
}
