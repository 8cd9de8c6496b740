package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

const userColumns = `id, name, email, password_hash, otp_hash, otp_expiry_local, otp_expires_at, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, name, email, passwordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (name, email, password_hash)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET name = COALESCE(NULLIF(EXCLUDED.name, ''), user_account.name),
            updated_at = NOW()
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, name, email, passwordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, email string, name, passwordHash *string) (*domain.User, error) {
	const query = `
        UPDATE user_account
        SET name = COALESCE($2, name),
            password_hash = COALESCE($3, password_hash),
            updated_at = NOW()
        WHERE email = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, name, passwordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, otpHash, expiryLocal string, expiresAt time.Time) error {
	const query = `
        UPDATE user_account
        SET otp_hash = $2,
            otp_expiry_local = $3,
            otp_expires_at = $4,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, otpHash, expiryLocal, expiresAt)
	return err
}

func (r *UserRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE user_account
        SET otp_hash = NULL,
            otp_expiry_local = NULL,
            otp_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) ConsumeOTP(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            otp_hash = NULL,
            otp_expiry_local = NULL,
            otp_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1 AND otp_hash IS NOT NULL
    `
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *UserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	const query = `
        UPDATE user_account
        SET otp_hash = NULL,
            otp_expiry_local = NULL,
            otp_expires_at = NULL,
            updated_at = NOW()
        WHERE otp_expires_at IS NOT NULL AND otp_expires_at < $1
    `
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        ORDER BY created_at
        LIMIT $1 OFFSET $2
    `
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_account`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_account WHERE email = $1`, email)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *UserRepository) DeleteByEmails(ctx context.Context, emails []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_account WHERE email = ANY($1)`, pq.Array(emails))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_account`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
