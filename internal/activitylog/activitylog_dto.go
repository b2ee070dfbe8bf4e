package activitylog

import (
	"time"

	"go-jobmarket/internal/shared/contextutil"

	"github.com/google/uuid"
)

// RecordInput describes one transition to append to the log.
type RecordInput struct {
	Action     ActionType
	EntityID   uuid.UUID
	EntityName string
	Actor      contextutil.Actor
	Notes      string
	Before     map[string]any
	After      map[string]any
	Metadata   map[string]any
}

type ListFilter struct {
	ActionType  ActionType
	EntityType  EntityType
	EntityID    string
	PerformedBy string
	From        *time.Time
	To          *time.Time
	Search      string
	Page        int
	PageSize    int
}

// ListQuery is the query-string shape of ListFilter.
type ListQuery struct {
	ActionType  string `form:"action_type"`
	EntityType  string `form:"entity_type"`
	EntityID    string `form:"entity_id"`
	PerformedBy string `form:"performed_by"`
	From        string `form:"from"`
	To          string `form:"to"`
	Search      string `form:"q"`
}

type EntryResponse struct {
	ID            string         `json:"id"`
	ActionType    string         `json:"action_type"`
	EntityType    string         `json:"entity_type"`
	EntityID      string         `json:"entity_id"`
	EntityName    string         `json:"entity_name"`
	PerformedBy   string         `json:"performed_by"`
	PerformerRole string         `json:"performer_role,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     string         `json:"created_at"`
}
