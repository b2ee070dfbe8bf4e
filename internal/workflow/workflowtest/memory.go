package workflowtest

import (
	"context"
	"sync"
	"time"

	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journal keeps entries in memory for tests that run the state machines
// without a database. Err, when set, fails Append (only for FailOn if given).
type Journal struct {
	mu      sync.Mutex
	entries []activitylog.Entry
	FailOn  activitylog.ActionType
	Err     error
}

func NewJournal() *Journal {
	return &Journal{}
}

func (m *Journal) WithTx(tx *gorm.DB) workflow.Journal {
	return m
}

func (m *Journal) Append(ctx context.Context, t workflow.Transition) (*activitylog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil && (m.FailOn == "" || m.FailOn == t.Action) {
		return nil, m.Err
	}

	e := activitylog.Entry{
		ID:            uuid.New(),
		ActionType:    t.Action,
		EntityType:    t.Action.EntityType(),
		EntityID:      t.EntityID,
		EntityName:    t.EntityName,
		PerformedBy:   t.Actor.ID,
		PerformerRole: t.Actor.Role,
		Notes:         t.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *Journal) Entries() []activitylog.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]activitylog.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Count returns how many entries of action were recorded for entityID (uuid.Nil matches all).
func (m *Journal) Count(action activitylog.ActionType, entityID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.ActionType == action && (entityID == uuid.Nil || e.EntityID == entityID) {
			n++
		}
	}
	return n
}
