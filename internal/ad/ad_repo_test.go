package ad_test

import (
	"context"
	"testing"
	"time"

	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_UpdateStatus_WritesApprovalColumns(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := ad.NewRepository(db)

	mock.ExpectExec(`UPDATE "ads" SET "approved_at"=\$1,"approved_by"=\$2,"status"=\$3,"updated_at"=NOW\(\) WHERE id = \$4 AND status = \$5`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.UpdateStatus(context.Background(), uuid.New(), ad.StatusPendingApproval, ad.StatusUpdate{
		To: ad.StatusApproved,
		At: time.Now(),
		By: "admin-1",
	})

	require.NoError(t, err)
	assert.Zero(t, n, "a row that already left PENDING_APPROVAL is not touched")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_Rejection(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := ad.NewRepository(db)

	mock.ExpectExec(`UPDATE "ads" SET "rejected_at"=\$1,"rejected_by"=\$2,"rejection_notes"=\$3,"status"=\$4,"updated_at"=NOW\(\) WHERE id = \$5 AND status = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateStatus(context.Background(), uuid.New(), ad.StatusPendingApproval, ad.StatusUpdate{
		To:    ad.StatusRejected,
		At:    time.Now(),
		By:    "admin-1",
		Notes: "missing salary",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ScopedToEmployer(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := ad.NewRepository(db)
	employerID := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "ads" WHERE employer_id = \$1 AND status = \$2 AND \(title ILIKE \$3 OR reference_no ILIKE \$4\)`).
		WithArgs(employerID, string(ad.StatusPendingApproval), "%50\\%%", "%50\\%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "ads" WHERE .* ORDER BY created_at DESC,\s?id DESC LIMIT .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employer_id", "status", "title"}).
			AddRow(uuid.NewString(), employerID, string(ad.StatusPendingApproval), "50% commission sales"))

	ads, total, err := repo.List(context.Background(), ad.ListFilter{
		EmployerID: employerID,
		Status:     ad.StatusPendingApproval,
		Search:     "50%",
		Page:       1,
		PageSize:   20,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, ads, 1)
	assert.Equal(t, "50% commission sales", ads[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := ad.NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "ads" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}
