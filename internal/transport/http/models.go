package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

// Response is the envelope every endpoint returns: code mirrors the
// HTTP status, message is the user-facing reason.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newResponse(code int, message string) Response {
	return Response{Code: code, Message: message}
}

// UserView is the authenticated representation of a credential record.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserView(u *domain.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// PublicUserView is the listing representation: id, password and OTP
// material are stripped.
type PublicUserView struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SignupResponse struct {
	Response
	User UserView `json:"user"`
}

type LoginData struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type LoginResponse struct {
	Response
	Data LoginData `json:"data"`
}

type ListUsersResponse struct {
	Response
	Data                  []PublicUserView `json:"data"`
	CurrentPageUsersCount int              `json:"currentPageUsersCount"`
	TotalUsers            int64            `json:"totalUsers"`
	CurrentPage           int              `json:"currentPage"`
	TotalPages            int              `json:"totalPages"`
}

type ResetInitiateResponse struct {
	Response
	ExpiryAtLocal string `json:"expiryAtLocal"`
}

type TasksResponse struct {
	Response
	Data []domain.Task `json:"data"`
}

type TaskResponse struct {
	Response
	Data domain.Task `json:"data"`
}

type ListTasksResponse struct {
	Response
	Data                  []domain.Task `json:"data"`
	CurrentPageTasksCount int           `json:"currentPageTasksCount"`
	TotalTasks            int64         `json:"totalTasks"`
	CurrentPage           int           `json:"currentPage"`
	TotalPages            int           `json:"totalPages"`
}

type GroupedTasksResponse struct {
	Response
	Data []domain.OwnerTasks `json:"data"`
}

type DeletedCountData struct {
	DeletedCount int64 `json:"deletedCount"`
}

type DeletedCountResponse struct {
	Response
	Data DeletedCountData `json:"data"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type UpdateDetailsRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type DeleteUserRequest struct {
	Email string `json:"email"`
}

type DeleteSelectedUsersRequest struct {
	Emails []string `json:"emails"`
}

type ResetInitiateRequest struct {
	Email string `json:"email"`
}

type ResetCompleteRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type NewTaskItem struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

type NewTasksRequest struct {
	Tasks []NewTaskItem `json:"tasks"`
}

type UpdateTaskRequest struct {
	Task      *string `json:"task"`
	Completed *bool   `json:"completed"`
}

type DeleteSelectedTasksRequest struct {
	TaskIDs []string `json:"taskIds"`
}

type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
