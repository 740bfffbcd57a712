package audit

import "time"

// Event is emitted from domain logic to capture key monetization actions.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ReaderID  string    `json:"reader_id"`
	EpisodeID string    `json:"episode_id,omitempty"`
	Action    string    `json:"action"`
	Kind      string    `json:"kind,omitempty"`
	Points    int64     `json:"points"`
	Balance   int64     `json:"balance"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventReaderRegistered             AuditEvent = "reader_registered"
	EventRentalGranted                AuditEvent = "rental_granted"
	EventPurchaseGranted              AuditEvent = "purchase_granted"
	EventRentalConverted              AuditEvent = "rental_converted"
	EventGrantDeniedInsufficientFunds AuditEvent = "grant_denied_insufficient_points"
	EventPointsCharged                AuditEvent = "points_charged"
	EventEpisodePricesUpdated         AuditEvent = "episode_prices_updated"
)

const (
	DecisionGranted = "granted"
	DecisionDenied  = "denied"
)
