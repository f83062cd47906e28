package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Address represents an account identifier in its EIP-55 checksummed form
type Address string

// ParseAddress validates and normalizes a hex account address
func ParseAddress(address string) (Address, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid account address: %q", address)
	}
	return Address(common.HexToAddress(address).Hex()), nil
}

// ParseAddresses parses a list of addresses, stopping at the first invalid entry
func ParseAddresses(addresses []string) ([]Address, error) {
	parsed := make([]Address, len(addresses))
	for i, address := range addresses {
		a, err := ParseAddress(address)
		if err != nil {
			return nil, err
		}
		parsed[i] = a
	}
	return parsed, nil
}

// MustParseAddress is ParseAddress for constants and tests
func MustParseAddress(address string) Address {
	a, err := ParseAddress(address)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the string representation of the address
func (a Address) String() string {
	return string(a)
}

// Equal compares two addresses case-insensitively
func (a Address) Equal(other Address) bool {
	return strings.EqualFold(string(a), string(other))
}

// IsZero reports whether the address is empty or the zero address
func (a Address) IsZero() bool {
	return a == "" || strings.EqualFold(string(a), ETHEREUM_ZERO_ADDRESS)
}

// TokenID is the asset identifier, a 256-bit unsigned integer kept in canonical decimal form
type TokenID string

// ParseTokenID parses a decimal or 0x-prefixed hex token identifier
func ParseTokenID(s string) (TokenID, error) {
	n, err := parseUint256(s)
	if err != nil {
		return "", fmt.Errorf("invalid token id: %w", err)
	}
	return TokenID(n.String()), nil
}

// MustParseTokenID is ParseTokenID for constants and tests
func MustParseTokenID(s string) TokenID {
	id, err := ParseTokenID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the token id
func (t TokenID) String() string {
	return string(t)
}

// Big returns the token id as a big integer
func (t TokenID) Big() *big.Int {
	n, _ := new(big.Int).SetString(string(t), 10)
	return n
}

// ParseAmount parses a non-negative 256-bit amount of the payment token
func ParseAmount(s string) (*big.Int, error) {
	n, err := parseUint256(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	return n, nil
}

func parseUint256(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, fmt.Errorf("value must be an unsigned integer: %q", s)
	}
	n, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("value is not a 256-bit unsigned integer: %q", s)
	}
	return n, nil
}

// OwnerShare is one entry of an asset's ownership partition
type OwnerShare struct {
	Owner Address `json:"owner"`
	Share uint32  `json:"share"`
}

// Roles holds the process-wide registry roles
type Roles struct {
	Administrator   Address `json:"administrator"`
	DisputeResolver Address `json:"dispute_resolver"`
}

// ProposalStatus is the lifecycle state of a proposal at a given instant
type ProposalStatus string

const (
	ProposalStatusOpen     ProposalStatus = "open"
	ProposalStatusExecuted ProposalStatus = "executed"
	ProposalStatusLapsed   ProposalStatus = "lapsed"
)

// ProposalStatusAt derives the proposal status from its stored fields and the current time.
// A proposal whose deadline has passed stays executable until executed; it is reported
// as lapsed because no further votes are accepted.
func ProposalStatusAt(executed bool, deadline time.Time, now time.Time) ProposalStatus {
	if executed {
		return ProposalStatusExecuted
	}
	if now.Before(deadline) {
		return ProposalStatusOpen
	}
	return ProposalStatusLapsed
}

// EventType represents the type of registry event signalled to observers
type EventType string

const (
	EventTypeIPRegistered           EventType = "ip.registered"
	EventTypeRoyaltiesDistributed   EventType = "royalties.distributed"
	EventTypeProposalCreated        EventType = "proposal.created"
	EventTypeVoteCast               EventType = "proposal.voted"
	EventTypeProposalExecuted       EventType = "proposal.executed"
	EventTypeDisputeResolved        EventType = "dispute.resolved"
	EventTypeDisputeResolverUpdated EventType = "dispute_resolver.updated"
)

// IsValidEventType checks if an event type is known
func IsValidEventType(eventType EventType) bool {
	switch eventType {
	case EventTypeIPRegistered,
		EventTypeRoyaltiesDistributed,
		EventTypeProposalCreated,
		EventTypeVoteCast,
		EventTypeProposalExecuted,
		EventTypeDisputeResolved,
		EventTypeDisputeResolverUpdated:
		return true
	}
	return false
}

// RegistryEvent is the normalized event published to NATS after a state change commits
type RegistryEvent struct {
	EventID    string                 `json:"event_id"`              // ULID, time-sortable
	EventType  EventType              `json:"event_type"`            // e.g. "ip.registered"
	TokenID    TokenID                `json:"token_id,omitempty"`    // asset the event concerns (empty for role changes)
	ProposalID *uint64                `json:"proposal_id,omitempty"` // set for proposal events
	Actor      Address                `json:"actor"`                 // authenticated caller
	Timestamp  time.Time              `json:"timestamp"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Subject returns the NATS subject for the event, e.g. "registry.ip.registered"
func (e *RegistryEvent) Subject() string {
	return fmt.Sprintf("registry.%s", e.EventType)
}
