package employer

import (
	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/shared/apperror"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionBlock   Action = "block"
	ActionUnblock Action = "unblock"
)

type rule struct {
	from          Status
	to            Status
	logAs         activitylog.ActionType
	notesRequired bool
}

// PENDING_APPROVAL -> ACTIVE | REJECTED, ACTIVE <-> BLOCKED. REJECTED is terminal.
var rules = map[Action]rule{
	ActionApprove: {from: StatusPendingApproval, to: StatusActive, logAs: activitylog.ActionEmployerApproved},
	ActionReject:  {from: StatusPendingApproval, to: StatusRejected, logAs: activitylog.ActionEmployerRejected, notesRequired: true},
	ActionBlock:   {from: StatusActive, to: StatusBlocked, logAs: activitylog.ActionEmployerBlocked, notesRequired: true},
	ActionUnblock: {from: StatusBlocked, to: StatusActive, logAs: activitylog.ActionEmployerUnblocked},
}

// Next returns the status that action leads to from current, or an
// INVALID_STATE error naming both.
func Next(current Status, action Action) (Status, error) {
	r, ok := rules[action]
	if !ok || r.from != current {
		return "", apperror.InvalidTransition("employer", string(current), string(action))
	}
	return r.to, nil
}

func NotesRequired(action Action) bool {
	return rules[action].notesRequired
}
