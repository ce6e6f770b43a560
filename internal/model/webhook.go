package model

import "time"

// Notification is an inbound assertion that an order's payment went through.
type Notification struct {
	Identifiers
	TargetStatus string
	EventType    string
	Source       string
	Payload      interface{}
	// Resync lets an already confirmed order retry targets that are not yet synced.
	Resync bool
	// DecodeError is set when the inbound body could not be parsed.
	DecodeError string
}

type Outcome string

const (
	OutcomeConfirmed        Outcome = "confirmed"
	OutcomeAlreadyConfirmed Outcome = "already_confirmed"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeTerminalConflict Outcome = "terminal_conflict"
	OutcomeInvalid          Outcome = "invalid_request"
	OutcomeStoreFailure     Outcome = "store_failure"
)

type ResultClass string

const (
	ResultSuccess          ResultClass = "success"
	ResultRetryableFailure ResultClass = "retryable-failure"
	ResultPermanentFailure ResultClass = "permanent-failure"
)

type TargetStatus string

const (
	TargetSynced        TargetStatus = "synced"
	TargetSkipped       TargetStatus = "skipped"
	TargetAlreadySynced TargetStatus = "already_synced"
	TargetFailed        TargetStatus = "failed"
)

type TargetResult struct {
	Target    Target       `json:"target"`
	Status    TargetStatus `json:"status"`
	Attempts  int          `json:"attempts,omitempty"`
	Reference string       `json:"reference,omitempty"`
	Error     string       `json:"error,omitempty"`
	Retryable bool         `json:"retryable,omitempty"`
}

type WebhookProcessingResult struct {
	Success                bool           `json:"success"`
	Outcome                Outcome        `json:"outcome"`
	OrderID                string         `json:"orderId,omitempty"`
	OrderNumber            string         `json:"orderNumber,omitempty"`
	DownstreamReference    string         `json:"downstreamReference,omitempty"`
	Error                  string         `json:"error,omitempty"`
	Retryable              bool           `json:"retryable"`
	ReconciliationRequired bool           `json:"reconciliationRequired,omitempty"`
	Targets                []TargetResult `json:"targets,omitempty"`
}

// Class maps the result onto the audit classification.
func (r WebhookProcessingResult) Class() ResultClass {
	switch {
	case r.Success:
		return ResultSuccess
	case r.Retryable:
		return ResultRetryableFailure
	default:
		return ResultPermanentFailure
	}
}

// WebhookEvent is the audit record of one inbound notification.
type WebhookEvent struct {
	ID        string            `json:"id"`
	EventType string            `json:"eventType"`
	Source    string            `json:"source"`
	Payload   string            `json:"payload"`
	OrderID   string            `json:"orderId,omitempty"`
	Status    string            `json:"status"`
	Result    ResultClass       `json:"result"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
