package mou_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-jobmarket/internal/mou"
	mouerrors "go-jobmarket/internal/mou/errors"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type fakeService struct {
	createFn    func(ctx context.Context, actor contextutil.Actor, req mou.CreateMOURequest) (mou.MOUResponse, error)
	statusFn    func(ctx context.Context, actor contextutil.Actor, employerID string) (mou.MouStatusResponse, error)
	uploadFn    func(ctx context.Context, actor contextutil.Actor, id string, doc mou.DocumentUpload) (mou.MOUResponse, error)
	deactivateE error
}

func (f *fakeService) Create(ctx context.Context, actor contextutil.Actor, req mou.CreateMOURequest) (mou.MOUResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeService) Deactivate(ctx context.Context, actor contextutil.Actor, id string) (mou.MOUResponse, error) {
	return mou.MOUResponse{ID: id}, f.deactivateE
}

func (f *fakeService) GetByID(ctx context.Context, actor contextutil.Actor, id string) (mou.MOUResponse, error) {
	return mou.MOUResponse{}, mouerrors.ErrMOUNotFound(id)
}

func (f *fakeService) ListByEmployer(ctx context.Context, actor contextutil.Actor, employerID string) ([]mou.MOUResponse, error) {
	return nil, nil
}

func (f *fakeService) MouStatus(ctx context.Context, actor contextutil.Actor, employerID string) (mou.MouStatusResponse, error) {
	return f.statusFn(ctx, actor, employerID)
}

func (f *fakeService) UploadDocument(ctx context.Context, actor contextutil.Actor, id string, doc mou.DocumentUpload) (mou.MOUResponse, error) {
	return f.uploadFn(ctx, actor, id, doc)
}

func newRouter(svc mou.Service, actor *contextutil.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := mou.NewHandler(svc, zap.NewNop())
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(contextutil.WithActor(c.Request.Context(), *actor))
			c.Next()
		})
	}
	r.POST("/mous", h.Create)
	r.GET("/mous/:id", h.GetByID)
	r.POST("/mous/:id/deactivate", h.Deactivate)
	r.POST("/mous/:id/document", h.UploadDocument)
	r.GET("/employers/:id/mou-status", h.MouStatus)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Create(t *testing.T) {
	svc := &fakeService{createFn: func(ctx context.Context, actor contextutil.Actor, req mou.CreateMOURequest) (mou.MOUResponse, error) {
		assert.Equal(t, "admin-1", actor.ID)
		assert.Equal(t, "12.5", req.FeeValue.String())
		return mou.MOUResponse{ID: "m-1", Version: 1, FeeValue: "12.50"}, nil
	}}
	body := `{"employer_id":"` + acmeID.String() + `","fee_type":"PERCENTAGE","fee_value":"12.50","signed_at":"2026-01-01T00:00:00Z"}`

	w := httptest.NewRecorder()
	newRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mous", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Ok)
}

func TestHandler_Create_BadFeeType(t *testing.T) {
	svc := &fakeService{createFn: func(ctx context.Context, actor contextutil.Actor, req mou.CreateMOURequest) (mou.MOUResponse, error) {
		t.Fatal("service must not be called")
		return mou.MOUResponse{}, nil
	}}
	body := `{"employer_id":"x","fee_type":"HOURLY","fee_value":"1","signed_at":"2026-01-01T00:00:00Z"}`

	w := httptest.NewRecorder()
	newRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mous", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Unauthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&fakeService{}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mous/abc", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&fakeService{}, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mous/abc", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode(t, w).Error.Code)
}

func TestHandler_Deactivate_InvalidState(t *testing.T) {
	svc := &fakeService{deactivateE: apperror.InvalidTransition("mou", "INACTIVE", "deactivate")}

	w := httptest.NewRecorder()
	newRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mous/abc/deactivate", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeInvalidState, decode(t, w).Error.Code)
}

func TestHandler_MouStatus(t *testing.T) {
	svc := &fakeService{statusFn: func(ctx context.Context, actor contextutil.Actor, employerID string) (mou.MouStatusResponse, error) {
		assert.Equal(t, acmeID.String(), employerID)
		return mou.MouStatusResponse{EmployerID: employerID, HasActiveMou: false}, nil
	}}

	w := httptest.NewRecorder()
	newRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employers/"+acmeID.String()+"/mou-status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got mou.MouStatusResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.False(t, got.HasActiveMou)
}

func TestHandler_UploadDocument(t *testing.T) {
	svc := &fakeService{uploadFn: func(ctx context.Context, actor contextutil.Actor, id string, doc mou.DocumentUpload) (mou.MOUResponse, error) {
		assert.Equal(t, "m-1", id)
		assert.Equal(t, "signed.pdf", doc.Filename)
		data, err := io.ReadAll(doc.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data))
		return mou.MOUResponse{ID: id}, nil
	}}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", "signed.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/mous/m-1/document", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newRouter(svc, &admin).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_UploadDocument_MissingFile(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&fakeService{}, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mous/m-1/document", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
