package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

const taskColumns = `id, owner_id, task, completed, created_at, updated_at`

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateBatch(ctx context.Context, ownerID uuid.UUID, tasks []domain.NewTask) ([]domain.Task, error) {
	const query = `
        INSERT INTO task (owner_id, task, completed)
        SELECT $1, t.task, t.completed
        FROM UNNEST($2::text[], $3::boolean[]) AS t(task, completed)
        RETURNING ` + taskColumns

	texts := make([]string, 0, len(tasks))
	completed := make([]bool, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, t.Text)
		completed = append(completed, t.Completed)
	}

	created := []domain.Task{}
	if err := r.db.SelectContext(ctx, &created, query, ownerID, pq.Array(texts), pq.BoolArray(completed)); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM task
        WHERE owner_id = $1
        ORDER BY created_at
        LIMIT $2 OFFSET $3
    `
	tasks := []domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, ownerID, limit, offset); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM task WHERE owner_id = $1`, ownerID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TaskRepository) ListWithOwners(ctx context.Context) ([]domain.TaskWithOwner, error) {
	const query = `
        SELECT t.id, t.owner_id, t.task, t.completed, t.created_at, t.updated_at,
               u.name AS owner_name, u.email AS owner_email
        FROM task t
        JOIN user_account u ON u.id = t.owner_id
        ORDER BY t.owner_id, t.created_at
    `
	tasks := []domain.TaskWithOwner{}
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, ownerID uuid.UUID, text *string, completed *bool) (*domain.Task, error) {
	const query = `
        UPDATE task
        SET task = COALESCE($3, task),
            completed = COALESCE($4, completed),
            updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
        RETURNING ` + taskColumns

	row := r.db.QueryRowxContext(ctx, query, id, ownerID, text, completed)
	var task domain.Task
	if err := row.StructScan(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	const query = `
        DELETE FROM task
        WHERE id = $1 AND owner_id = $2
        RETURNING ` + taskColumns

	row := r.db.QueryRowxContext(ctx, query, id, ownerID)
	var task domain.Task
	if err := row.StructScan(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) DeleteByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	const query = `DELETE FROM task WHERE owner_id = $1 AND id = ANY($2::uuid[])`
	res, err := r.db.ExecContext(ctx, query, ownerID, pq.Array(idStrings))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
