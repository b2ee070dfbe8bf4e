package ad_test

import (
	"testing"

	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	statuses := []ad.Status{
		ad.StatusDraft, ad.StatusPendingApproval, ad.StatusApproved, ad.StatusRejected, ad.StatusArchived,
	}
	allowed := map[ad.Status]map[ad.Action]ad.Status{
		ad.StatusDraft:           {ad.ActionSubmit: ad.StatusPendingApproval},
		ad.StatusPendingApproval: {ad.ActionApprove: ad.StatusApproved, ad.ActionReject: ad.StatusRejected},
		ad.StatusApproved:        {ad.ActionArchive: ad.StatusArchived},
	}

	for _, from := range statuses {
		for _, action := range []ad.Action{ad.ActionSubmit, ad.ActionApprove, ad.ActionReject, ad.ActionArchive} {
			to, err := ad.Next(from, action)
			want, ok := allowed[from][action]
			if ok {
				require.NoError(t, err, "%s --%s-->", from, action)
				assert.Equal(t, want, to)
				continue
			}
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState), "%s --%s--> should be refused", from, action)
		}
	}
}

func TestNext_ErrorDetails(t *testing.T) {
	_, err := ad.Next(ad.StatusRejected, ad.ActionApprove)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "ad", appErr.Details.(map[string]any)["entity"])
	assert.Equal(t, "REJECTED", appErr.Details.(map[string]any)["current_state"])
	assert.Equal(t, "approve", appErr.Details.(map[string]any)["attempted"])
}
