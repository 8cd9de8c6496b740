package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	Upsert(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateDetails(ctx context.Context, email string, name, passwordHash *string) (*domain.User, error)
	SetOTP(ctx context.Context, id uuid.UUID, otpHash, expiryLocal string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
	// ConsumeOTP sets the password hash and clears the OTP fields in a
	// single update guarded on a pending OTP still being present. The
	// boolean reports whether the guard matched.
	ConsumeOTP(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error)
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
	DeleteByEmails(ctx context.Context, emails []string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
