package domain

import "errors"

// ErrorKind groups registry errors by cause
type ErrorKind string

const (
	ErrorKindAuthorization ErrorKind = "authorization"
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindLookup        ErrorKind = "lookup"
	ErrorKindState         ErrorKind = "state"
)

// RegistryError is a rejection of a single registry operation.
// Every rejection leaves the registry state exactly as it was before the call.
type RegistryError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *RegistryError) Error() string {
	return e.Message
}

func newRegistryError(kind ErrorKind, code, message string) *RegistryError {
	return &RegistryError{Kind: kind, Code: code, Message: message}
}

var (
	// Authorization
	ErrNotAdministrator   = newRegistryError(ErrorKindAuthorization, "not_administrator", "caller is not the administrator")
	ErrNotAnOwner         = newRegistryError(ErrorKindAuthorization, "not_an_owner", "caller is not an owner of the asset")
	ErrNotDisputeResolver = newRegistryError(ErrorKindAuthorization, "not_dispute_resolver", "caller is not the dispute resolver")
	ErrDeniedAccount      = newRegistryError(ErrorKindAuthorization, "denied_account", "account is denied by the registry")

	// Validation
	ErrInvalidMetadata    = newRegistryError(ErrorKindValidation, "invalid_metadata", "metadata uri must not be empty")
	ErrOwnerShareMismatch = newRegistryError(ErrorKindValidation, "owner_share_mismatch", "owners and shares must have the same length")
	ErrNoOwners           = newRegistryError(ErrorKindValidation, "no_owners", "at least one owner is required")
	ErrRoyaltyRateTooHigh = newRegistryError(ErrorKindValidation, "royalty_rate_too_high", "royalty rate must not exceed 1000 basis points")
	ErrSharesNotFull      = newRegistryError(ErrorKindValidation, "shares_not_full", "shares must sum to exactly 1000 basis points")
	ErrAlreadyRegistered  = newRegistryError(ErrorKindValidation, "already_registered", "asset is already registered")
	ErrDuplicateOwner     = newRegistryError(ErrorKindValidation, "duplicate_owner", "an owner appears more than once")
	ErrInvalidAccount     = newRegistryError(ErrorKindValidation, "invalid_account", "account identifier is invalid")
	ErrInvalidTokenID     = newRegistryError(ErrorKindValidation, "invalid_token_id", "token id must be a 256-bit unsigned integer")
	ErrInvalidAmount      = newRegistryError(ErrorKindValidation, "invalid_amount", "amount must be a 256-bit unsigned integer")

	// Lookup
	ErrAssetNotFound        = newRegistryError(ErrorKindLookup, "asset_not_found", "asset not found")
	ErrNoIPData             = newRegistryError(ErrorKindLookup, "no_ip_data", "no ip data for asset")
	ErrProposalNotFound     = newRegistryError(ErrorKindLookup, "proposal_not_found", "proposal not found")
	ErrOwnerIndexOutOfRange = newRegistryError(ErrorKindLookup, "owner_index_out_of_range", "owner index is out of range")

	// Timing / state
	ErrVotingPeriodNotEnded = newRegistryError(ErrorKindState, "voting_period_not_ended", "voting period has not ended")
	ErrVotingClosed         = newRegistryError(ErrorKindState, "voting_closed", "voting on this proposal is closed")
	ErrAlreadyVoted         = newRegistryError(ErrorKindState, "already_voted", "caller has already voted on this proposal")
	ErrAlreadyExecuted      = newRegistryError(ErrorKindState, "already_executed", "proposal has already been executed")
	ErrProposalRejected     = newRegistryError(ErrorKindState, "proposal_rejected", "proposal did not reach the execution threshold")
)

// AsRegistryError extracts the registry error carried by err, if any
func AsRegistryError(err error) (*RegistryError, bool) {
	var re *RegistryError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
