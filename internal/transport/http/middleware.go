package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/internal/util"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

// TokenData is the decoded assertion attached to authenticated
// requests; IssuedAt is rendered in the IST display format.
type TokenData struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	IssuedAt string    `json:"issued_at"`
}

// RequireAuth verifies the bearer token, resolves it to a credential
// record and attaches both to the request context. A failed lookup is
// terminal for the request.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "No token provided"))
			}

			user, claims, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUserNotFound):
					return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "User not found"))
				default:
					return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "Invalid token"))
				}
			}

			data := TokenData{
				UserID: claims.UserID,
				Email:  claims.Email,
				Name:   claims.Name,
			}
			if claims.IssuedAt != nil {
				data.IssuedAt = util.FormatIST(claims.IssuedAt.Time)
			}

			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, data)
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

func CurrentToken(c echo.Context) (TokenData, bool) {
	data, ok := c.Get(contextTokenKey).(TokenData)
	return data, ok
}
