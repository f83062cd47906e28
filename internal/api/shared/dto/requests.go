package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-ip-registry/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/registry"
	internalTypes "github.com/feral-file/ff-ip-registry/internal/types"
	"github.com/feral-file/ff-ip-registry/internal/webhook"
)

// RegisterIPRequest represents the request body for registering an asset
type RegisterIPRequest struct {
	TokenID      string    `json:"token_id"`
	MetadataURI  string    `json:"metadata_uri"`
	Owners       []string  `json:"owners"`
	Shares       []uint32  `json:"shares"`
	RoyaltyRate  uint32    `json:"royalty_rate"`
	ExpiryDate   time.Time `json:"expiry_date"`
	LicenseTerms string    `json:"license_terms"`
}

// ToInput converts the request into a registration input.
// Only the wire format is checked here; the registry validates the partition itself.
func (r *RegisterIPRequest) ToInput() (registry.RegisterIPInput, error) {
	tokenID, err := domain.ParseTokenID(r.TokenID)
	if err != nil {
		return registry.RegisterIPInput{}, domain.ErrInvalidTokenID
	}

	owners, err := domain.ParseAddresses(r.Owners)
	if err != nil {
		return registry.RegisterIPInput{}, domain.ErrInvalidAccount
	}

	return registry.RegisterIPInput{
		TokenID:      tokenID,
		MetadataURI:  r.MetadataURI,
		Owners:       owners,
		Shares:       r.Shares,
		RoyaltyRate:  r.RoyaltyRate,
		ExpiryDate:   r.ExpiryDate,
		LicenseTerms: r.LicenseTerms,
	}, nil
}

// DistributeRoyaltiesRequest represents the request body for distributing royalties.
// Amount is a decimal string so that the full 256-bit range survives JSON.
type DistributeRoyaltiesRequest struct {
	Amount string `json:"amount"`
}

// CreateProposalRequest represents the request body for creating a proposal
type CreateProposalRequest struct {
	Description string `json:"description"`
}

// Validate validates the request body
func (r *CreateProposalRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return apierrors.NewValidationError("description is required")
	}
	if len(r.Description) > constants.MAX_DESCRIPTION_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("description must not exceed %d bytes", constants.MAX_DESCRIPTION_LENGTH))
	}
	return nil
}

// VoteRequest represents the request body for casting a vote
type VoteRequest struct {
	Support *bool `json:"support"`
}

// Validate validates the request body
func (r *VoteRequest) Validate() error {
	if r.Support == nil {
		return apierrors.NewValidationError("support is required")
	}
	return nil
}

// ResolveDisputeRequest represents the request body for recording a dispute resolution
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

// Validate validates the request body
func (r *ResolveDisputeRequest) Validate() error {
	if strings.TrimSpace(r.Resolution) == "" {
		return apierrors.NewValidationError("resolution is required")
	}
	return nil
}

// SetDisputeResolverRequest represents the request body for replacing the dispute resolver
type SetDisputeResolverRequest struct {
	DisputeResolver string `json:"dispute_resolver"`
}

// CreateWebhookClientRequest represents the request body for creating a webhook client
type CreateWebhookClientRequest struct {
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts,omitempty"`
}

// Validate validates the request body
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	// Validate: webhook URL must be provided
	if r.WebhookURL == "" {
		return apierrors.NewValidationError("webhook_url is required")
	}

	// Validate: webhook URL must be valid, plain http is accepted in debug mode only
	if debug {
		if !internalTypes.IsValidURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid URL")
		}
	} else {
		if !internalTypes.IsHTTPSURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid HTTPS URL")
		}
	}

	// Validate: event filters must be provided
	if len(r.EventFilters) == 0 {
		return apierrors.NewValidationError("event_filters is required and must not be empty")
	}

	// Validate: each event filter must be supported
	for _, eventType := range r.EventFilters {
		if !webhook.IsValidEventFilter(eventType) {
			return apierrors.NewValidationError(fmt.Sprintf("unsupported event type: %s. Supported types: %v", eventType, webhook.SupportedEventTypes))
		}
	}

	// Validate: retry_max_attempts must be valid if provided
	if r.RetryMaxAttempts != nil {
		if *r.RetryMaxAttempts < 1 || *r.RetryMaxAttempts > constants.MAX_RETRY_MAX_ATTEMPTS {
			return apierrors.NewValidationError(fmt.Sprintf("retry_max_attempts must be between 1 and %d", constants.MAX_RETRY_MAX_ATTEMPTS))
		}
	}

	return nil
}
