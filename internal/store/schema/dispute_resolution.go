package schema

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// DisputeResolution represents the dispute_resolutions table - log of recorded resolutions
type DisputeResolution struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the disputed asset
	TokenID domain.TokenID `gorm:"column:token_id;not null;type:text;index"`
	// Resolver is the dispute resolver at the time of the call
	Resolver domain.Address `gorm:"column:resolver;not null;type:text"`
	// Resolution is the free-text outcome
	Resolution string `gorm:"column:resolution;not null;type:text"`
	// CreatedAt is the resolution time
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the DisputeResolution model
func (DisputeResolution) TableName() string {
	return "dispute_resolutions"
}
