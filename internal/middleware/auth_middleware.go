package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID     = "user_id"
	ContextRole       = "role"
	ContextEmployerID = "employer_id"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies the HS256 bearer token (or access_token cookie) and
// places the caller's Actor in both the gin and the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			abortWith(c, ErrInvalidToken.WithDetails(map[string]any{"reason": err.Error()}))
			return
		}

		c.Set(ContextUserID, actor.ID)
		c.Set(ContextRole, actor.Role)
		c.Set(ContextEmployerID, actor.EmployerID)

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		ctx = contextutil.WithUserID(ctx, actor.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (contextutil.Actor, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return contextutil.Actor{}, errors.New("user_id claim missing")
	}

	role, _ := claims["role"].(string)
	employerID, _ := claims["employer_id"].(string)

	switch role {
	case contextutil.RoleBranchAdmin:
	case contextutil.RoleEmployer:
		if employerID == "" {
			return contextutil.Actor{}, errors.New("employer_id claim missing")
		}
	default:
		return contextutil.Actor{}, fmt.Errorf("unknown role %q", role)
	}

	return contextutil.Actor{ID: userID, Role: role, EmployerID: employerID}, nil
}

// SignToken issues a token that AuthMiddleware accepts. Used by tests and local tooling.
func SignToken(secret string, actor contextutil.Actor, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": actor.ID,
		"role":    actor.Role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	if actor.EmployerID != "" {
		claims["employer_id"] = actor.EmployerID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextRole)
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.ErrForbidden)
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, err.Details)
	c.Abort()
}
