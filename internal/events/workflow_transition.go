package events

import "time"

const WorkflowTransitionTopic = "jobmarket.workflow.transition.v1"

const (
	AggregateAd       = "ad"
	AggregateEmployer = "employer"
	AggregateMOU      = "mou"
)

// WorkflowTransitionEvent is published once per committed status change.
// EventType carries the activity action type (AD_APPROVED, EMPLOYER_BLOCKED, ...).
type WorkflowTransitionEvent struct {
	EventType   string    `json:"event_type"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	EmployerID  string    `json:"employer_id,omitempty"`
	FromStatus  string    `json:"from_status,omitempty"`
	ToStatus    string    `json:"to_status,omitempty"`
	PerformedBy string    `json:"performed_by"`
	Notes       string    `json:"notes,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
