package ad_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/ad"
	aderrors "go-jobmarket/internal/ad/errors"
	adMock "go-jobmarket/internal/ad/mock"
	"go-jobmarket/internal/bulk"
	"go-jobmarket/internal/employer"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/shared/testutil"
	"go-jobmarket/internal/workflow/workflowtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	admin   = contextutil.Actor{ID: "admin-1", Role: contextutil.RoleBranchAdmin}
	withMOU = uuid.New()
	noMOU   = uuid.New()
)

func owner(employerID uuid.UUID) contextutil.Actor {
	return contextutil.Actor{ID: "emp-user-" + employerID.String()[:8], Role: contextutil.RoleEmployer, EmployerID: employerID.String()}
}

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	repo      *memRepo
	companies *adMock.MockCompanyLookup
	checker   *fakeChecker
	journal   *workflowtest.Journal
	service   ad.Service
}

func setupServiceTest(t *testing.T, ads ...*ad.Ad) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, sqlMock := testutil.NewMockDB(t)

	deps := &serviceDeps{
		sqlMock:   sqlMock,
		repo:      newMemRepo(ads...),
		companies: adMock.NewMockCompanyLookup(ctrl),
		checker:   &fakeChecker{valid: map[uuid.UUID]bool{withMOU: true}},
		journal:   workflowtest.NewJournal(),
	}
	// one worker keeps the sqlmock begin/commit order deterministic
	coordinator := bulk.NewCoordinator(1, 50, zap.NewNop())
	deps.service = ad.NewService(db, deps.repo, deps.companies, deps.checker, &fakeCounter{}, deps.journal, coordinator, zap.NewNop())

	t.Cleanup(func() { assert.NoError(t, sqlMock.ExpectationsWereMet()) })
	return deps
}

func pendingAd(employerID uuid.UUID) *ad.Ad {
	return newAd(employerID, ad.StatusPendingApproval)
}

func newAd(employerID uuid.UUID, status ad.Status) *ad.Ad {
	return &ad.Ad{
		ID:          uuid.New(),
		ReferenceNo: "AD-2026-000001",
		EmployerID:  employerID,
		CompanyID:   uuid.New(),
		Title:       "Warehouse Supervisor",
		Category:    "logistics",
		CategoryFields: datatypes.NewJSONType(ad.CategoryFields{
			EmploymentType: ad.EmploymentFullTime,
			Location:       "Jakarta",
		}),
		Status: status,
	}
}

func validCreateRequest(companyID uuid.UUID) ad.CreateAdRequest {
	lo, hi := int64(8_000_000), int64(12_000_000)
	return ad.CreateAdRequest{
		CompanyID:   companyID.String(),
		Title:       "Warehouse Supervisor",
		Description: "Lead the night shift.",
		Category:    "logistics",
		CategoryFields: ad.CategoryFields{
			SalaryMin:      &lo,
			SalaryMax:      &hi,
			Currency:       "idr",
			Skills:         []string{"forklift", " ", "inventory"},
			EmploymentType: "full_time",
			Location:       "Jakarta",
		},
	}
}

func TestAdService_ScenarioA_NoMouBlocksApproval(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	companyID := uuid.New()
	deps.companies.EXPECT().FindCompany(gomock.Any(), companyID).
		Return(&employer.Company{ID: companyID, EmployerID: noMOU}, nil)

	testutil.ExpectTx(t, deps.sqlMock, true)
	created, err := deps.service.Create(ctx, owner(noMOU), validCreateRequest(companyID))
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, fmt.Sprintf("AD-%s-000001", time.Now().UTC().Format("2006")), created.ReferenceNo)
	assert.Equal(t, []string{"forklift", "inventory"}, created.CategoryFields.Skills)
	assert.Equal(t, "IDR", created.CategoryFields.Currency)

	testutil.ExpectTx(t, deps.sqlMock, true)
	submitted, err := deps.service.Submit(ctx, owner(noMOU), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING_APPROVAL", submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err = deps.service.Approve(ctx, admin, created.ID)

	require.True(t, apperror.HasCode(err, apperror.CodeMouRequired))
	appErr, _ := apperror.As(err)
	assert.Equal(t, map[string]any{"employer_id": noMOU.String()}, appErr.Details)
	assert.Equal(t, ad.StatusPendingApproval, deps.repo.get(uuid.MustParse(created.ID)).Status)
	assert.Equal(t, 1, deps.journal.Count(activitylog.ActionAdSubmitted, uuid.Nil))
	assert.Equal(t, 0, deps.journal.Count(activitylog.ActionAdApproved, uuid.Nil))
}

func TestAdService_Approve(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)

	testutil.ExpectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Approve(context.Background(), admin, a.ID.String())

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "admin-1", *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)
	assert.Equal(t, 1, deps.checker.calls)
	assert.Equal(t, 1, deps.journal.Count(activitylog.ActionAdApproved, a.ID))
}

func TestAdService_Approve_StatusCheckedBeforeMou(t *testing.T) {
	draft := newAd(noMOU, ad.StatusDraft)
	deps := setupServiceTest(t, draft)

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err := deps.service.Approve(context.Background(), admin, draft.ID.String())

	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
	assert.Equal(t, 0, deps.checker.calls)
}

func TestAdService_ScenarioC_EmptyNotesHasNoSideEffects(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)
	ctx := context.Background()

	_, err := deps.service.Reject(ctx, admin, a.ID.String(), "")
	require.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
	assert.Equal(t, ad.StatusPendingApproval, deps.repo.get(a.ID).Status)
	assert.Empty(t, deps.journal.Entries())

	testutil.ExpectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Approve(ctx, admin, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
}

func TestAdService_DoubleReject(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)
	ctx := context.Background()

	testutil.ExpectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Reject(ctx, admin, a.ID.String(), "salary range missing")
	require.NoError(t, err)
	assert.Equal(t, "salary range missing", resp.RejectionNotes)

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err = deps.service.Reject(ctx, admin, a.ID.String(), "salary range missing")

	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
	assert.Equal(t, 1, deps.journal.Count(activitylog.ActionAdRejected, a.ID))
	assert.Equal(t, "salary range missing", deps.journal.Entries()[0].Notes)
}

func TestAdService_LostRace(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)
	deps.repo.concurrent = func(cur *ad.Ad) {
		cur.Status = ad.StatusRejected
	}

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err := deps.service.Approve(context.Background(), admin, a.ID.String())

	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
	assert.Equal(t, ad.StatusRejected, deps.repo.get(a.ID).Status)
	assert.Equal(t, 1, deps.checker.calls)
	assert.Empty(t, deps.journal.Entries())
}

func TestAdService_RejectedIsTerminal(t *testing.T) {
	a := newAd(withMOU, ad.StatusRejected)
	deps := setupServiceTest(t, a)

	for _, call := range []func() error{
		func() error { _, err := deps.service.Submit(context.Background(), owner(withMOU), a.ID.String()); return err },
		func() error { _, err := deps.service.Approve(context.Background(), admin, a.ID.String()); return err },
		func() error { _, err := deps.service.Archive(context.Background(), admin, a.ID.String()); return err },
	} {
		testutil.ExpectTx(t, deps.sqlMock, false)
		assert.True(t, apperror.HasCode(call(), apperror.CodeInvalidState))
	}
}

func TestAdService_Archive(t *testing.T) {
	a := newAd(withMOU, ad.StatusApproved)
	deps := setupServiceTest(t, a)
	ctx := context.Background()

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err := deps.service.Archive(ctx, owner(noMOU), a.ID.String())
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	testutil.ExpectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Archive(ctx, owner(withMOU), a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVED", resp.Status)
	assert.Equal(t, 1, deps.journal.Count(activitylog.ActionAdArchived, a.ID))
}

func TestAdService_EmployerCannotApprove(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)

	_, err := deps.service.Approve(context.Background(), owner(withMOU), a.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = deps.service.BulkReject(context.Background(), owner(withMOU), []string{a.ID.String()}, "x")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAdService_JournalFailureFailsTransition(t *testing.T) {
	a := pendingAd(withMOU)
	deps := setupServiceTest(t, a)
	deps.journal.Err = errors.New("activity_logs unavailable")

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err := deps.service.Approve(context.Background(), admin, a.ID.String())

	assert.Error(t, err)
	assert.Empty(t, deps.journal.Entries())
}

func TestAdService_BulkApprove_PartialSuccess(t *testing.T) {
	a1, a2, a3 := pendingAd(withMOU), pendingAd(withMOU), pendingAd(withMOU)
	b1, b2 := pendingAd(noMOU), pendingAd(noMOU)
	deps := setupServiceTest(t, a1, a2, a3, b1, b2)

	ids := []string{a1.ID.String(), b1.ID.String(), a2.ID.String(), b2.ID.String(), a3.ID.String()}
	for _, commit := range []bool{true, false, true, false, true} {
		testutil.ExpectTx(t, deps.sqlMock, commit)
	}

	res, err := deps.service.BulkApprove(context.Background(), admin, ids)

	require.NoError(t, err)
	assert.Equal(t, []string{a1.ID.String(), a2.ID.String(), a3.ID.String()}, res.Succeeded)
	require.Len(t, res.Failed, 2)
	for i, f := range res.Failed {
		assert.Equal(t, []string{b1.ID.String(), b2.ID.String()}[i], f.ID)
		assert.Equal(t, apperror.CodeMouRequired, f.Code)
	}
	assert.Equal(t, 3, deps.journal.Count(activitylog.ActionAdApproved, uuid.Nil))
	assert.Equal(t, ad.StatusPendingApproval, deps.repo.get(b1.ID).Status)
}

func TestAdService_BulkReject_Validation(t *testing.T) {
	deps := setupServiceTest(t)

	_, err := deps.service.BulkReject(context.Background(), admin, []string{uuid.NewString()}, " ")
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))

	_, err = deps.service.BulkReject(context.Background(), admin, nil, "duplicate")
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestAdService_Create_Validation(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("branch admin cannot author ads", func(t *testing.T) {
		_, err := deps.service.Create(ctx, admin, validCreateRequest(companyID))
		assert.ErrorIs(t, err, aderrors.ErrEmployerAccountRequired)
	})

	t.Run("company of another employer", func(t *testing.T) {
		deps.companies.EXPECT().FindCompany(gomock.Any(), companyID).
			Return(&employer.Company{ID: companyID, EmployerID: noMOU}, nil)

		_, err := deps.service.Create(ctx, owner(withMOU), validCreateRequest(companyID))
		assert.ErrorIs(t, err, aderrors.ErrCompanyNotOwned)
	})

	t.Run("salary range inverted", func(t *testing.T) {
		deps.companies.EXPECT().FindCompany(gomock.Any(), companyID).
			Return(&employer.Company{ID: companyID, EmployerID: withMOU}, nil)
		req := validCreateRequest(companyID)
		low := int64(1)
		req.CategoryFields.SalaryMax = &low

		_, err := deps.service.Create(ctx, owner(withMOU), req)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
	})
}

func TestAdService_UpdateDraft(t *testing.T) {
	draft := newAd(withMOU, ad.StatusDraft)
	pending := pendingAd(withMOU)
	deps := setupServiceTest(t, draft, pending)
	ctx := context.Background()
	title := "Night Shift Warehouse Supervisor"

	testutil.ExpectTx(t, deps.sqlMock, true)
	resp, err := deps.service.UpdateDraft(ctx, owner(withMOU), draft.ID.String(), ad.UpdateAdRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, resp.Title)
	assert.Equal(t, title, deps.repo.get(draft.ID).Title)

	testutil.ExpectTx(t, deps.sqlMock, false)
	_, err = deps.service.UpdateDraft(ctx, owner(withMOU), pending.ID.String(), ad.UpdateAdRequest{Title: &title})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
}

func TestAdService_List_ScopedToEmployer(t *testing.T) {
	mine := pendingAd(withMOU)
	theirs := pendingAd(noMOU)
	deps := setupServiceTest(t, mine, theirs)

	list, total, err := deps.service.List(context.Background(), owner(withMOU),
		ad.ListQuery{EmployerID: noMOU.String()}, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID.String(), list[0].ID)

	_, _, err = deps.service.List(context.Background(), admin, ad.ListQuery{Status: "LIVE"}, 1, 20)
	assert.ErrorIs(t, err, aderrors.ErrInvalidStatus)
}

func TestAdService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, _ := testutil.NewMockDB(t)
	repo := adMock.NewMockRepository(ctrl)
	svc := ad.NewService(db, repo, adMock.NewMockCompanyLookup(ctrl), &fakeChecker{}, &fakeCounter{}, workflowtest.NewJournal(), nil, zap.NewNop())
	a := pendingAd(withMOU)

	t.Run("owner sees the ad", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)

		resp, err := svc.GetByID(context.Background(), owner(withMOU), a.ID.String())

		require.NoError(t, err)
		assert.Equal(t, a.ReferenceNo, resp.ReferenceNo)
	})

	t.Run("other employer gets not found", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)

		_, err := svc.GetByID(context.Background(), owner(noMOU), a.ID.String())

		assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), admin, "AD-2026-000001")

		assert.ErrorIs(t, err, aderrors.ErrInvalidAdID)
	})
}
