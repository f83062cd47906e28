package webhook

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// SupportedEventTypes lists the event types a client may filter on
var SupportedEventTypes = []string{
	string(domain.EventTypeIPRegistered),
	string(domain.EventTypeRoyaltiesDistributed),
	string(domain.EventTypeProposalCreated),
	string(domain.EventTypeVoteCast),
	string(domain.EventTypeProposalExecuted),
	string(domain.EventTypeDisputeResolved),
	string(domain.EventTypeDisputeResolverUpdated),
	EventTypeWildcard,
}

// IsValidEventFilter checks if a client event filter names a registry event type or the wildcard
func IsValidEventFilter(filter string) bool {
	return filter == EventTypeWildcard || domain.IsValidEventType(domain.EventType(filter))
}

// WebhookEvent represents a webhook event to be delivered to clients
type WebhookEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "proposal.executed")
	EventType string `json:"event_type"`
	// Timestamp is when the registry change was committed
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload
type EventData struct {
	// TokenID is the asset the event concerns, empty for role changes
	TokenID string `json:"token_id,omitempty"`
	// ProposalID is set for proposal events
	ProposalID *uint64 `json:"proposal_id,omitempty"`
	// Actor is the caller that made the change
	Actor string `json:"actor"`
	// Details carries the event-specific fields (e.g., payouts for royalties.distributed)
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewWebhookEvent converts a registry event into its webhook form
func NewWebhookEvent(event *domain.RegistryEvent) WebhookEvent {
	return WebhookEvent{
		EventID:   event.EventID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
		Data: EventData{
			TokenID:    event.TokenID.String(),
			ProposalID: event.ProposalID,
			Actor:      event.Actor.String(),
			Details:    event.Data,
		},
	}
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
