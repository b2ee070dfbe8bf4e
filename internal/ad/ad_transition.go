package ad

import (
	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/shared/apperror"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionArchive Action = "archive"
)

type rule struct {
	from  Status
	to    Status
	logAs activitylog.ActionType
}

// REJECTED and ARCHIVED are terminal; a rejected ad is replaced by a new draft.
var rules = map[Action]rule{
	ActionSubmit:  {from: StatusDraft, to: StatusPendingApproval, logAs: activitylog.ActionAdSubmitted},
	ActionApprove: {from: StatusPendingApproval, to: StatusApproved, logAs: activitylog.ActionAdApproved},
	ActionReject:  {from: StatusPendingApproval, to: StatusRejected, logAs: activitylog.ActionAdRejected},
	ActionArchive: {from: StatusApproved, to: StatusArchived, logAs: activitylog.ActionAdArchived},
}

func Next(current Status, action Action) (Status, error) {
	r, ok := rules[action]
	if !ok || r.from != current {
		return "", apperror.InvalidTransition("ad", string(current), string(action))
	}
	return r.to, nil
}
