package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/repository/ports"
	"github.com/taskhive/taskhive-backend/internal/util"
)

var (
	ErrNoTasksProvided = errors.New("please provide an array of tasks")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNoTasksFound    = errors.New("no tasks found")
	ErrNoTasksDeleted  = errors.New("no tasks found to delete")
	ErrNoUpdateFields  = errors.New("no update fields provided")
)

type TaskService struct {
	tasks ports.TaskRepository
}

func NewTaskService(tasks ports.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) CreateBatch(ctx context.Context, ownerID uuid.UUID, tasks []domain.NewTask) ([]domain.Task, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasksProvided
	}
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			return nil, ErrNoTasksProvided
		}
	}
	return s.tasks.CreateBatch(ctx, ownerID, tasks)
}

// ListByOwner pages through the owner's tasks with the same arithmetic
// as the user listing; an empty page within range reports ErrNoTasksFound.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page util.Page) ([]domain.Task, util.PageMeta, error) {
	total, err := s.tasks.CountByOwner(ctx, ownerID)
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

	tasks, err := s.tasks.ListByOwner(ctx, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, util.PageMeta{}, err
	}
	if len(tasks) == 0 {
		return nil, meta, ErrNoTasksFound
	}
	meta.Count = len(tasks)
	return tasks, meta, nil
}

// GroupedByOwner returns every task in the system bucketed per owner.
func (s *TaskService) GroupedByOwner(ctx context.Context) ([]domain.OwnerTasks, error) {
	rows, err := s.tasks.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTasksFound
	}

	groups := []domain.OwnerTasks{}
	index := map[uuid.UUID]int{}
	for _, row := range rows {
		i, ok := index[row.OwnerID]
		if !ok {
			i = len(groups)
			index[row.OwnerID] = i
			groups = append(groups, domain.OwnerTasks{
				User: domain.TaskOwner{ID: row.OwnerID, Name: row.OwnerName, Email: row.OwnerEmail},
			})
		}
		groups[i].Tasks = append(groups[i].Tasks, row.Task)
	}
	return groups, nil
}

func (s *TaskService) Update(ctx context.Context, id, ownerID uuid.UUID, text *string, completed *bool) (*domain.Task, error) {
	if text == nil && completed == nil {
		return nil, ErrNoUpdateFields
	}
	task, err := s.tasks.Update(ctx, id, ownerID, text, completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteSelected(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoTasksProvided
	}
	deleted, err := s.tasks.DeleteByIDs(ctx, ownerID, ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNoTasksDeleted
	}
	return deleted, nil
}

func (s *TaskService) DeleteAll(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	deleted, err := s.tasks.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNoTasksDeleted
	}
	return deleted, nil
}
