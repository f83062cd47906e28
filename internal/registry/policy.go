package registry

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// ValidateRegistration checks a registration request and returns its ownership partition.
// Checks run in a fixed order and the first failure is returned.
func ValidateRegistration(input RegisterIPInput, denylist access.Denylist) ([]domain.OwnerShare, error) {
	if strings.TrimSpace(input.MetadataURI) == "" {
		return nil, domain.ErrInvalidMetadata
	}
	if len(input.Owners) != len(input.Shares) {
		return nil, fmt.Errorf("%w: %d owners, %d shares", domain.ErrOwnerShareMismatch, len(input.Owners), len(input.Shares))
	}
	if len(input.Owners) == 0 {
		return nil, domain.ErrNoOwners
	}
	if input.RoyaltyRate > domain.MAX_ROYALTY_RATE {
		return nil, fmt.Errorf("%w: got %d", domain.ErrRoyaltyRateTooHigh, input.RoyaltyRate)
	}

	var sum uint64
	for _, share := range input.Shares {
		sum += uint64(share)
	}
	if sum != domain.TOTAL_SHARES {
		return nil, fmt.Errorf("%w: shares sum to %d", domain.ErrSharesNotFull, sum)
	}

	owners := make([]domain.OwnerShare, len(input.Owners))
	seen := make(map[string]bool, len(input.Owners))
	for i, owner := range input.Owners {
		key := strings.ToLower(owner.String())
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateOwner, owner)
		}
		seen[key] = true
		owners[i] = domain.OwnerShare{Owner: owner, Share: input.Shares[i]}
	}

	for _, owner := range owners {
		if owner.Owner.IsZero() {
			return nil, fmt.Errorf("%w: zero address cannot own shares", domain.ErrInvalidAccount)
		}
		if denylist != nil && denylist.IsDenied(owner.Owner) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeniedAccount, owner.Owner)
		}
	}

	return owners, nil
}

// SplitRoyalty computes each owner's payout of total.
// Every payout is truncated to total*share/TOTAL_SHARES and the undistributed
// remainder goes to the first owner, so the payouts always sum to total.
func SplitRoyalty(total *big.Int, owners []domain.OwnerShare) []*big.Int {
	payouts := make([]*big.Int, len(owners))
	if len(owners) == 0 {
		return payouts
	}

	denominator := big.NewInt(domain.TOTAL_SHARES)
	distributed := new(big.Int)
	for i, owner := range owners {
		payout := new(big.Int).Mul(total, big.NewInt(int64(owner.Share)))
		payout.Quo(payout, denominator)
		payouts[i] = payout
		distributed.Add(distributed, payout)
	}

	remainder := new(big.Int).Sub(total, distributed)
	payouts[0].Add(payouts[0], remainder)

	return payouts
}

// MeetsThreshold reports whether a yes-tally carries a strict majority of the shares.
// A tally of exactly half does not pass.
func MeetsThreshold(voteCount uint32) bool {
	return uint64(voteCount)*2 > domain.TOTAL_SHARES
}
