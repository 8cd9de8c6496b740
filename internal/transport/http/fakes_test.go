package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/internal/util"
)

// memUserRepo and memTaskRepo back the handler tests with in-memory
// state so the full request path runs without a database.
type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	if _, ok := r.users[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	now := time.Now()
	user := &domain.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	r.users[email] = user
	return user, nil
}

func (r *memUserRepo) Upsert(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	if user, ok := r.users[email]; ok {
		user.Name = name
		return user, nil
	}
	return r.Create(ctx, name, email, passwordHash)
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) UpdateDetails(ctx context.Context, email string, name, passwordHash *string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if name != nil {
		user.Name = *name
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	return user, nil
}

func (r *memUserRepo) SetOTP(ctx context.Context, id uuid.UUID, otpHash, expiryLocal string, expiresAt time.Time) error {
	for _, user := range r.users {
		if user.ID == id {
			user.OTPHash = &otpHash
			user.OTPExpiryLocal = &expiryLocal
			user.OTPExpiresAt = &expiresAt
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memUserRepo) ClearOTP(ctx context.Context, id uuid.UUID) error {
	for _, user := range r.users {
		if user.ID == id {
			user.OTPHash = nil
			user.OTPExpiryLocal = nil
			user.OTPExpiresAt = nil
		}
	}
	return nil
}

func (r *memUserRepo) ConsumeOTP(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	for _, user := range r.users {
		if user.ID == id && user.OTPHash != nil {
			user.PasswordHash = passwordHash
			user.OTPHash = nil
			user.OTPExpiryLocal = nil
			user.OTPExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	var cleared int64
	for _, user := range r.users {
		if user.OTPExpiresAt != nil && user.OTPExpiresAt.Before(now) {
			user.OTPHash = nil
			user.OTPExpiryLocal = nil
			user.OTPExpiresAt = nil
			cleared++
		}
	}
	return cleared, nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	if _, ok := r.users[email]; !ok {
		return false, nil
	}
	delete(r.users, email)
	return true, nil
}

func (r *memUserRepo) DeleteByEmails(ctx context.Context, emails []string) (int64, error) {
	var deleted int64
	for _, email := range emails {
		if _, ok := r.users[email]; ok {
			delete(r.users, email)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memUserRepo) DeleteAll(ctx context.Context) (int64, error) {
	deleted := int64(len(r.users))
	r.users = map[string]*domain.User{}
	return deleted, nil
}

type memTaskRepo struct {
	tasks  []*domain.Task
	owners map[uuid.UUID]domain.TaskOwner
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{owners: map[uuid.UUID]domain.TaskOwner{}}
}

func (r *memTaskRepo) CreateBatch(ctx context.Context, ownerID uuid.UUID, tasks []domain.NewTask) ([]domain.Task, error) {
	created := make([]domain.Task, 0, len(tasks))
	now := time.Now()
	for _, nt := range tasks {
		task := &domain.Task{ID: uuid.New(), OwnerID: ownerID, Text: nt.Text, Completed: nt.Completed, CreatedAt: now, UpdatedAt: now}
		r.tasks = append(r.tasks, task)
		created = append(created, *task)
	}
	return created, nil
}

func (r *memTaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Task, error) {
	var owned []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, *task)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (r *memTaskRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) ListWithOwners(ctx context.Context) ([]domain.TaskWithOwner, error) {
	rows := make([]domain.TaskWithOwner, 0, len(r.tasks))
	for _, task := range r.tasks {
		owner := r.owners[task.OwnerID]
		rows = append(rows, domain.TaskWithOwner{Task: *task, OwnerName: owner.Name, OwnerEmail: owner.Email})
	}
	return rows, nil
}

func (r *memTaskRepo) Update(ctx context.Context, id, ownerID uuid.UUID, text *string, completed *bool) (*domain.Task, error) {
	for _, task := range r.tasks {
		if task.ID == id && task.OwnerID == ownerID {
			if text != nil {
				task.Text = *text
			}
			if completed != nil {
				task.Completed = *completed
			}
			copied := *task
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memTaskRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	for i, task := range r.tasks {
		if task.ID == id && task.OwnerID == ownerID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return task, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memTaskRepo) DeleteByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var kept []*domain.Task
	var deleted int64
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && wanted[task.ID] {
			deleted++
			continue
		}
		kept = append(kept, task)
	}
	r.tasks = kept
	return deleted, nil
}

func (r *memTaskRepo) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var kept []*domain.Task
	var deleted int64
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, task)
	}
	r.tasks = kept
	return deleted, nil
}

type capturingMailer struct {
	toEmail string
	otp     string
}

func (m *capturingMailer) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	m.toEmail = email
	m.otp = otp
	return nil
}

// testEnv wires the real router, middleware, handlers and services over
// the in-memory repositories.
type testEnv struct {
	e      *echo.Echo
	users  *memUserRepo
	tasks  *memTaskRepo
	mailer *capturingMailer
	auth   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newMemUserRepo()
	tasks := newMemTaskRepo()
	mailer := &capturingMailer{}
	jwt := util.NewJWTManager("test-secret", time.Hour)
	auth := service.NewAuthService(users, mailer, jwt, "", 10*time.Minute)

	e := NewRouter([]string{"*"})
	RegisterUsers(e, auth, service.NewUserService(users))
	RegisterTasks(e, auth, service.NewTaskService(tasks))
	return &testEnv{e: e, users: users, tasks: tasks, mailer: mailer, auth: auth}
}

func (env *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers a user through the API and returns the
// issued bearer token.
func (env *testEnv) signupAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := env.do(t, "POST", "/users/signup", "", map[string]string{"name": name, "email": email, "password": password})
	if rec.Code != 201 {
		t.Fatalf("signup failed with status %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, "POST", "/users/login", "", map[string]string{"email": email, "password": password})
	if rec.Code != 200 {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("login response carries no token")
	}
	return resp.Data.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}
