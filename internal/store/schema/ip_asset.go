package schema

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// IPAsset represents the ip_assets table - one row per registered asset.
// A token id is either absent or registered exactly once.
type IPAsset struct {
	// TokenID is the asset identifier, a 256-bit unsigned integer in canonical decimal form
	TokenID domain.TokenID `gorm:"column:token_id;primaryKey;type:text"`
	// MetadataURI points to off-ledger descriptive content (never empty)
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// RoyaltyRate is the fraction of future proceeds reserved as royalty, in basis points out of 1000
	RoyaltyRate uint32 `gorm:"column:royalty_rate;not null"`
	// ExpiryDate is stored only; expiry effects belong to external collaborators
	ExpiryDate time.Time `gorm:"column:expiry_date;not null;type:timestamptz"`
	// LicenseTerms is free text, rewritten when a proposal on the asset is executed
	LicenseTerms string `gorm:"column:license_terms;not null;type:text"`
	// TotalSupply always equals the sum of owner shares (1000) once registered
	TotalSupply uint32 `gorm:"column:total_supply;not null"`
	// RegisteredBy is the administrator that registered the asset
	RegisteredBy domain.Address `gorm:"column:registered_by;not null;type:text"`
	// CreatedAt is the registration timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last license terms change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Owners []IPAssetOwner `gorm:"foreignKey:TokenID;references:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the IPAsset model
func (IPAsset) TableName() string {
	return "ip_assets"
}

// OwnerAddresses returns the owners in insertion order
func (a *IPAsset) OwnerAddresses() []domain.Address {
	owners := make([]domain.Address, len(a.Owners))
	for i, o := range a.Owners {
		owners[i] = o.OwnerAddress
	}
	return owners
}

// OwnerShares returns the ownership partition in insertion order
func (a *IPAsset) OwnerShares() []domain.OwnerShare {
	shares := make([]domain.OwnerShare, len(a.Owners))
	for i, o := range a.Owners {
		shares[i] = domain.OwnerShare{Owner: o.OwnerAddress, Share: o.Share}
	}
	return shares
}

// ShareOf returns the share held by owner, or 0 when owner holds none
func (a *IPAsset) ShareOf(owner domain.Address) uint32 {
	for _, o := range a.Owners {
		if o.OwnerAddress.Equal(owner) {
			return o.Share
		}
	}
	return 0
}

// IPAssetOwner represents the ip_asset_owners table - the ownership partition of an asset
type IPAssetOwner struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the asset
	TokenID domain.TokenID `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_ip_asset_owners_token_position,priority:1;uniqueIndex:idx_ip_asset_owners_token_owner,priority:1"`
	// Position is the owner's zero-based insertion index
	Position int `gorm:"column:position;not null;uniqueIndex:idx_ip_asset_owners_token_position,priority:2"`
	// OwnerAddress is the owner's account identifier
	OwnerAddress domain.Address `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_ip_asset_owners_token_owner,priority:2"`
	// Share is the owner's share in basis points out of 1000
	Share uint32 `gorm:"column:share;not null"`
}

// TableName specifies the table name for the IPAssetOwner model
func (IPAssetOwner) TableName() string {
	return "ip_asset_owners"
}
