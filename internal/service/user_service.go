package service

import (
	"context"
	"errors"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/repository/ports"
	"github.com/taskhive/taskhive-backend/internal/util"
)

var (
	ErrPageOutOfRange = errors.New("page exceeds total number of pages")
	ErrNoUsersDeleted = errors.New("no users found to delete")
)

type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns one page of users. On ErrPageOutOfRange the meta is
// still populated so callers can report the page arithmetic.
func (s *UserService) List(ctx context.Context, page util.Page) ([]domain.User, util.PageMeta, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, util.PageMeta{}, err
	}

	meta := util.PageMeta{
		Total:      total,
		TotalPages: util.TotalPages(total, page.Limit),
		Page:       page.Number,
		Limit:      page.Limit,
	}
	if page.Number > meta.TotalPages {
		return nil, meta, ErrPageOutOfRange
	}

	users, err := s.users.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, util.PageMeta{}, err
	}
	meta.Count = len(users)
	return users, meta, nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	deleted, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) DeleteSelected(ctx context.Context, emails []string) (int64, error) {
	normalized := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			normalized = append(normalized, e)
		}
	}
	if len(normalized) == 0 {
		return 0, ErrEmailRequired
	}
	deleted, err := s.users.DeleteByEmails(ctx, normalized)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNoUsersDeleted
	}
	return deleted, nil
}

func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.users.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNoUsersDeleted
	}
	return deleted, nil
}
