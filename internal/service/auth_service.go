package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/repository/ports"
	"github.com/taskhive/taskhive-backend/internal/util"
)

var (
	ErrEmailRequired       = errors.New("please provide an email address")
	ErrInvalidEmail        = errors.New("email is invalid")
	ErrEmailAlreadyUsed    = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidGoogleToken  = errors.New("invalid google token")
	ErrOTPInvalidOrExpired = errors.New("invalid or expired OTP")
	ErrInvalidOTP          = errors.New("invalid OTP")
)

const uniqueViolation = "23505"

// OTPSender delivers a plaintext reset code to a registered address.
type OTPSender interface {
	SendPasswordResetOTP(ctx context.Context, email, otp string) error
}

// LoginResult pairs an authenticated user with a freshly issued token.
type LoginResult struct {
	User  *domain.User
	Token string
}

type AuthService struct {
	users  ports.UserRepository
	mailer OTPSender
	jwt    *util.JWTManager
	otpTTL time.Duration

	// seam for tests; defaults to Google ID token validation.
	googleValidator func(ctx context.Context, idTok, aud string) (email, name string, err error)
	googleAud       string
}

func NewAuthService(users ports.UserRepository, mailer OTPSender, jwt *util.JWTManager, googleAud string, otpTTL time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		mailer:          mailer,
		jwt:             jwt,
		otpTTL:          otpTTL,
		googleValidator: validateGoogleIDToken,
		googleAud:       googleAud,
	}
}

func validateGoogleIDToken(ctx context.Context, idTok, aud string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, idTok, aud)
	if err != nil {
		return "", "", err
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return "", "", errors.New("google token missing email claim")
	}
	return email, name, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.jwt.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

// LoginWithGoogle validates a Google ID token and upserts the matching
// account. Google-created accounts receive an unguessable placeholder
// password hash so the not-empty invariant holds.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*LoginResult, error) {
	email, name, err := s.googleValidator(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	placeholder, err := util.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	user, err := s.users.Upsert(ctx, name, normalizeEmail(email), placeholder)
	if err != nil {
		return nil, err
	}

	token, _, err := s.jwt.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to its credential record. A
// verified token whose subject no longer exists fails with
// ErrUserNotFound (deleted-after-issue).
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *util.Claims, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	return user, claims, nil
}

func (s *AuthService) UpdateDetails(ctx context.Context, email string, name, password *string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	var passwordHash *string
	if password != nil {
		if err := util.ValidatePassword(*password); err != nil {
			return nil, err
		}
		hash, err := util.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	user, err := s.users.UpdateDetails(ctx, email, name, passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// InitiateReset starts (or restarts) the password reset flow. Any
// pending OTP is cleared before a new one is stored, so at most one
// code is live per user. Returns the expiry display string.
func (s *AuthService) InitiateReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := s.users.ClearOTP(ctx, user.ID); err != nil {
		return "", err
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		return "", err
	}
	otpHash, err := util.HashPassword(otp)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	expiryLocal := util.FormatIST(expiresAt)
	if err := s.users.SetOTP(ctx, user.ID, otpHash, expiryLocal, expiresAt); err != nil {
		return "", err
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, user.Email, otp); err != nil {
		return "", err
	}
	return expiryLocal, nil
}

// CompleteReset consumes a pending OTP and replaces the password. The
// consume is a single guarded update, so a raced completion cannot
// redeem the same code twice.
func (s *AuthService) CompleteReset(ctx context.Context, email, otp, newPassword string) error {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOTPInvalidOrExpired
		}
		return err
	}
	if !user.HasPendingReset() {
		return ErrOTPInvalidOrExpired
	}
	if time.Now().After(*user.OTPExpiresAt) {
		return ErrOTPInvalidOrExpired
	}
	if !util.VerifyPassword(otp, *user.OTPHash) {
		return ErrInvalidOTP
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	consumed, err := s.users.ConsumeOTP(ctx, user.ID, hash)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrOTPInvalidOrExpired
	}
	return nil
}

// SweepExpiredOTPs clears OTP fields whose expiry has passed.
func (s *AuthService) SweepExpiredOTPs(ctx context.Context) (int64, error) {
	return s.users.ClearExpiredOTPs(ctx, time.Now())
}

// RunOTPSweeper periodically clears expired OTPs until the context is
// cancelled. Intended to be launched as a goroutine from main.
func (s *AuthService) RunOTPSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleared, err := s.SweepExpiredOTPs(ctx)
			if err != nil {
				log.Printf("otp sweep failed: %v", err)
				continue
			}
			if cleared > 0 {
				log.Printf("otp sweep cleared %d expired code(s)", cleared)
			}
		}
	}
}
