package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/service"
)

// SessionCookie is the cookie carrying the signed session token. It is
// HTTP-only, so page scripts never see it.
const SessionCookie = "token"

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.Claims, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

type AuthMiddleware struct {
	tokens accessTokenValidator
	users  userFinder
}

func NewAuthMiddleware(tokens accessTokenValidator, users userFinder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAuth validates the session cookie and resolves the embedded user id
// back to a live record, which is attached to the request context for
// downstream ownership checks.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			logrus.Debug("Missing session cookie")
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "please login to access this resource"})
		}

		claims, err := m.tokens.ValidateAccessToken(cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				logrus.Debug("Session token expired")
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "token expired, please login again"})
			}
			logrus.Debug("Invalid session token")
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid token, please login again"})
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", claims.UserID).Error("Failed to resolve session user")
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
		}
		if user == nil {
			logrus.WithField("user_id", claims.UserID).Warn("Session token for unknown user")
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)

		return next(c)
	}
}
