package schema

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// RegistryRolesID is the primary key of the single registry_roles row
const RegistryRolesID = 1

// RegistryRoles represents the registry_roles table - a single row holding the process-wide roles
type RegistryRoles struct {
	// ID is always RegistryRolesID
	ID int `gorm:"column:id;primaryKey"`
	// Administrator is fixed when the row is first written
	Administrator domain.Address `gorm:"column:administrator;not null;type:text"`
	// DisputeResolver is replaceable by the administrator only
	DisputeResolver domain.Address `gorm:"column:dispute_resolver;not null;type:text"`
	// CreatedAt is the initialization time
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the time of the last resolver change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RegistryRoles model
func (RegistryRoles) TableName() string {
	return "registry_roles"
}

// Roles converts the row into domain roles
func (r *RegistryRoles) Roles() domain.Roles {
	return domain.Roles{
		Administrator:   r.Administrator,
		DisputeResolver: r.DisputeResolver,
	}
}
