package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/internal/util"
)

type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	handler := &UserHandler{auth: auth, users: users}

	g := e.Group("/users")
	g.POST("/signup", handler.signup)
	g.POST("/login", handler.login)
	g.POST("/login/google", handler.loginWithGoogle)
	g.PATCH("/updateDetails", handler.updateDetails, RequireAuth(auth))
	g.DELETE("/delete", handler.deleteUser, RequireAuth(auth))
	g.DELETE("/deleteselectedusers", handler.deleteSelectedUsers)
	g.DELETE("/deleteallusers", handler.deleteAllUsers)
	g.POST("/resetPassword/initiate", handler.initiateReset)
	g.POST("/resetPassword/complete", handler.completeReset)
	g.GET("/allusers", handler.listUsers)
}

func (h *UserHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide all required fields: name, email, password"))
	}

	user, err := h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyUsed),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, util.ErrPasswordTooShort),
			errors.Is(err, util.ErrPasswordForbidden):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
		}
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Response: newResponse(http.StatusCreated, "user created successfully"),
		User:     newUserView(user),
	})
}

func (h *UserHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide email and password"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Invalid email or password"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Response: newResponse(http.StatusOK, "Login successful"),
		Data:     LoginData{User: newUserView(result.User), Token: result.Token},
	})
}

func (h *UserHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide a Google ID token"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Response: newResponse(http.StatusOK, "Login successful"),
		Data:     LoginData{User: newUserView(result.User), Token: result.Token},
	})
}

func (h *UserHandler) updateDetails(c echo.Context) error {
	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Email not provided in the query"))
	}

	var req UpdateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}

	if _, err := h.auth.UpdateDetails(c.Request().Context(), email, req.Name, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "User not found for this email"))
		case errors.Is(err, util.ErrPasswordTooShort), errors.Is(err, util.ErrPasswordForbidden):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
		}
	}

	return c.JSON(http.StatusOK, newResponse(http.StatusOK, "User updated successfully"))
}

func (h *UserHandler) deleteUser(c echo.Context) error {
	var req DeleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Email not provided in the body"))
	}

	if err := h.users.Delete(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// observed contract: unknown email on single delete is a 400
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "User not found for this email"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, newResponse(http.StatusOK, "User deleted successfully"))
}

func (h *UserHandler) deleteSelectedUsers(c echo.Context) error {
	var req DeleteSelectedUsersRequest
	if err := c.Bind(&req); err != nil || req.Emails == nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide an array of emails to delete"))
	}

	deleted, err := h.users.DeleteSelected(c.Request().Context(), req.Emails)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide an array of emails to delete"))
		case errors.Is(err, service.ErrNoUsersDeleted):
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No users found with the provided emails"))
		default:
			return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
		}
	}

	return c.JSON(http.StatusOK, DeletedCountResponse{
		Response: newResponse(http.StatusOK, fmt.Sprintf("%d user(s) deleted successfully", deleted)),
		Data:     DeletedCountData{DeletedCount: deleted},
	})
}

func (h *UserHandler) deleteAllUsers(c echo.Context) error {
	deleted, err := h.users.DeleteAll(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoUsersDeleted) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No users found to delete"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, DeletedCountResponse{
		Response: newResponse(http.StatusOK, fmt.Sprintf("%d user(s) deleted successfully", deleted)),
		Data:     DeletedCountData{DeletedCount: deleted},
	})
}

func (h *UserHandler) initiateReset(c echo.Context) error {
	var req ResetInitiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide an email address"))
	}

	expiryLocal, err := h.auth.InitiateReset(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "User not found"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, ResetInitiateResponse{
		Response:      newResponse(http.StatusOK, fmt.Sprintf("otp sent to your email: %s", strings.ToLower(strings.TrimSpace(req.Email)))),
		ExpiryAtLocal: expiryLocal,
	})
}

func (h *UserHandler) completeReset(c echo.Context) error {
	var req ResetCompleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide email, OTP, and new password"))
	}

	if err := h.auth.CompleteReset(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrOTPInvalidOrExpired):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Invalid or expired OTP"))
		case errors.Is(err, service.ErrInvalidOTP):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Invalid OTP"))
		case errors.Is(err, util.ErrPasswordTooShort), errors.Is(err, util.ErrPasswordForbidden):
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
		}
	}

	return c.JSON(http.StatusOK, newResponse(http.StatusOK, "Password reset successfully"))
}

func (h *UserHandler) listUsers(c echo.Context) error {
	page, err := util.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Page and limit must be greater than 0"))
	}

	users, meta, err := h.users.List(c.Request().Context(), page)
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			return c.JSON(http.StatusBadRequest, ListUsersResponse{
				Response:              newResponse(http.StatusBadRequest, "Page exceeds total number of pages"),
				Data:                  []PublicUserView{},
				CurrentPageUsersCount: 0,
				TotalUsers:            meta.Total,
				CurrentPage:           meta.Page,
				TotalPages:            meta.TotalPages,
			})
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	views := make([]PublicUserView, 0, len(users))
	for _, u := range users {
		views = append(views, PublicUserView{Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt})
	}

	return c.JSON(http.StatusOK, ListUsersResponse{
		Response:              newResponse(http.StatusOK, "Users retrieved successfully"),
		Data:                  views,
		CurrentPageUsersCount: meta.Count,
		TotalUsers:            meta.Total,
		CurrentPage:           meta.Page,
		TotalPages:            meta.TotalPages,
	})
}
