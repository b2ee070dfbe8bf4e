package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobmarket/internal/domain"
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeRBAC struct {
	EnforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.EnforceFn(req)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		actor, ok := contextutil.GetActor(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role, "employer_id": actor.EmployerID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid employer token", func(t *testing.T) {
		token, err := middleware.SignToken(testSecret, contextutil.Actor{ID: "u-1", Role: contextutil.RoleEmployer, EmployerID: "emp-1"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"u-1","role":"EMPLOYER","employer_id":"emp-1"}`, w.Body.String())
	})

	t.Run("token from cookie", func(t *testing.T) {
		token, _ := middleware.SignToken(testSecret, contextutil.Actor{ID: "a-1", Role: contextutil.RoleBranchAdmin}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := middleware.SignToken(testSecret, contextutil.Actor{ID: "a-1", Role: contextutil.RoleBranchAdmin}, -time.Minute)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := middleware.SignToken("other", contextutil.Actor{ID: "a-1", Role: contextutil.RoleBranchAdmin}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
	})

	t.Run("employer without employer_id", func(t *testing.T) {
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "u-1",
			"role":    contextutil.RoleEmployer,
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
	})

	t.Run("unknown role", func(t *testing.T) {
		token, _ := middleware.SignToken(testSecret, contextutil.Actor{ID: "u-1", Role: "SUPERUSER"}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got domain.EnforceRequest
	svc := &fakeRBAC{EnforceFn: func(req domain.EnforceRequest) (bool, error) {
		got = req
		return req.Role == contextutil.RoleBranchAdmin, nil
	}}

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.POST("/ads/:id/approve",
			func(c *gin.Context) {
				c.Set(middleware.ContextUserID, "u-1")
				c.Set(middleware.ContextRole, role)
			},
			middleware.RBACAuthorize(svc, "ad", "approve"),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		return r
	}

	w := httptest.NewRecorder()
	newRouter(contextutil.RoleBranchAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ads/1/approve", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, domain.EnforceRequest{UserID: "u-1", Role: "BRANCH_ADMIN", Resource: "ad", Action: "approve"}, got)

	w = httptest.NewRecorder()
	newRouter(contextutil.RoleEmployer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ads/1/approve", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	w = httptest.NewRecorder()
	newRouter("").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ads/1/approve", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set(middleware.ContextUserID, "u-1") },
		middleware.RateLimitByUser(1, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
