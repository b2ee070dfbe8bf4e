package activitylog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActionType string

const (
	ActionAdSubmitted       ActionType = "AD_SUBMITTED"
	ActionAdApproved        ActionType = "AD_APPROVED"
	ActionAdRejected        ActionType = "AD_REJECTED"
	ActionAdArchived        ActionType = "AD_ARCHIVED"
	ActionEmployerApproved  ActionType = "EMPLOYER_APPROVED"
	ActionEmployerRejected  ActionType = "EMPLOYER_REJECTED"
	ActionEmployerBlocked   ActionType = "EMPLOYER_BLOCKED"
	ActionEmployerUnblocked ActionType = "EMPLOYER_UNBLOCKED"
	ActionMOUCreated        ActionType = "MOU_CREATED"
	ActionMOUDeactivated    ActionType = "MOU_DEACTIVATED"
)

var actionTypes = map[ActionType]EntityType{
	ActionAdSubmitted:       EntityAd,
	ActionAdApproved:        EntityAd,
	ActionAdRejected:        EntityAd,
	ActionAdArchived:        EntityAd,
	ActionEmployerApproved:  EntityEmployer,
	ActionEmployerRejected:  EntityEmployer,
	ActionEmployerBlocked:   EntityEmployer,
	ActionEmployerUnblocked: EntityEmployer,
	ActionMOUCreated:        EntityMOU,
	ActionMOUDeactivated:    EntityMOU,
}

func (a ActionType) Valid() bool {
	_, ok := actionTypes[a]
	return ok
}

// EntityType returns the only entity type the action may be recorded against.
func (a ActionType) EntityType() EntityType {
	return actionTypes[a]
}

type EntityType string

const (
	EntityAd       EntityType = "AD"
	EntityEmployer EntityType = "EMPLOYER"
	EntityMOU      EntityType = "MOU"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityAd, EntityEmployer, EntityMOU:
		return true
	}
	return false
}

// Entry is an immutable audit record of one state transition.
type Entry struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActionType    ActionType        `gorm:"type:varchar(40);not null;index:idx_activity_logs_action"`
	EntityType    EntityType        `gorm:"type:varchar(20);not null;index:idx_activity_logs_entity"`
	EntityID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_activity_logs_entity"`
	EntityName    string            `gorm:"type:varchar(255);not null;default:''"`
	PerformedBy   string            `gorm:"type:varchar(64);not null;index:idx_activity_logs_performed_by"`
	PerformerRole string            `gorm:"type:varchar(30);not null;default:''"`
	Notes         string            `gorm:"type:text;not null;default:''"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"not null;index:idx_activity_logs_created_at"`
}

func (Entry) TableName() string {
	return "activity_logs"
}
