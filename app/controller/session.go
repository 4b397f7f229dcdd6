package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/middleware"
	"github.com/taskforge/taskforge/app/service"
)

// sendSession delivers a freshly issued session: the token goes out as an
// HTTP-only cookie and again in the JSON body with the sanitized user.
func sendSession(ctx echo.Context, statusCode int, message string, result *service.SessionResult) error {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Expires:  result.CookieExpiresAt,
		Path:     "/",
		HttpOnly: true,
	})

	return ctx.JSON(statusCode, dto.SessionResponse{
		Success: true,
		Message: message,
		Token:   result.Token,
		User:    dto.NewUserPayload(result.User),
	})
}

// clearSessionCookie overwrites the cookie with an already-expired value.
// Nothing is tracked server side; the token simply ages out.
func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
	})
}

func currentUserID(ctx echo.Context) (uint64, bool) {
	userID, ok := ctx.Get("user_id").(uint64)
	return userID, ok
}
