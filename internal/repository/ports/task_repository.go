package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

type TaskRepository interface {
	CreateBatch(ctx context.Context, ownerID uuid.UUID, tasks []domain.NewTask) ([]domain.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Task, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListWithOwners(ctx context.Context) ([]domain.TaskWithOwner, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, text *string, completed *bool) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	DeleteByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
