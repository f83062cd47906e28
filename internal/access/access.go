// Package access implements the registry's role checks.
//
// Authorize is a pure function of the caller, the role an operation requires and the
// relevant registry state; it never reads storage itself.
package access

import (
	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// Role is a registry role an operation can require
type Role string

const (
	// RoleAdministrator authorizes asset registration, royalty distribution and resolver changes
	RoleAdministrator Role = "administrator"
	// RoleAssetOwner authorizes proposal creation and voting on a given asset
	RoleAssetOwner Role = "asset_owner"
	// RoleDisputeResolver authorizes recording dispute resolutions
	RoleDisputeResolver Role = "dispute_resolver"
)

// State is the slice of registry state a role check needs
type State struct {
	Roles domain.Roles
	// Owners of the target asset, empty when the asset is not registered
	Owners []domain.Address
}

// Authorize returns nil when caller holds role in state, or the role's authorization error
func Authorize(caller domain.Address, role Role, state State) error {
	switch role {
	case RoleAdministrator:
		if caller.IsZero() || !caller.Equal(state.Roles.Administrator) {
			return domain.ErrNotAdministrator
		}
	case RoleDisputeResolver:
		if caller.IsZero() || !caller.Equal(state.Roles.DisputeResolver) {
			return domain.ErrNotDisputeResolver
		}
	case RoleAssetOwner:
		if !IsOwner(caller, state.Owners) {
			return domain.ErrNotAnOwner
		}
	default:
		return domain.ErrNotAdministrator
	}

	return nil
}

// IsOwner reports whether caller appears in owners
func IsOwner(caller domain.Address, owners []domain.Address) bool {
	if caller.IsZero() {
		return false
	}
	for _, owner := range owners {
		if caller.Equal(owner) {
			return true
		}
	}
	return false
}
