package workflowtest_test

import (
	"context"
	"testing"

	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/workflow"
	"go-jobmarket/internal/workflow/workflowtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var admin = contextutil.Actor{ID: "admin-1", Role: contextutil.RoleBranchAdmin}

func TestJournal_Count(t *testing.T) {
	m := workflowtest.NewJournal()
	a, b := uuid.New(), uuid.New()
	ctx := context.Background()

	_, _ = m.Append(ctx, workflow.Transition{Action: activitylog.ActionAdApproved, EntityID: a, Actor: admin})
	_, _ = m.Append(ctx, workflow.Transition{Action: activitylog.ActionAdApproved, EntityID: b, Actor: admin})
	_, _ = m.Append(ctx, workflow.Transition{Action: activitylog.ActionAdRejected, EntityID: a, Actor: admin})

	assert.Equal(t, 2, m.Count(activitylog.ActionAdApproved, uuid.Nil))
	assert.Equal(t, 1, m.Count(activitylog.ActionAdApproved, a))
	assert.Len(t, m.Entries(), 3)
}

func TestJournal_FailOn(t *testing.T) {
	m := workflowtest.NewJournal()
	m.Err = assert.AnError
	m.FailOn = activitylog.ActionAdRejected
	ctx := context.Background()

	_, err := m.Append(ctx, workflow.Transition{Action: activitylog.ActionAdApproved, EntityID: uuid.New(), Actor: admin})
	assert.NoError(t, err)
	_, err = m.Append(ctx, workflow.Transition{Action: activitylog.ActionAdRejected, EntityID: uuid.New(), Actor: admin})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, m.Entries(), 1)
}
