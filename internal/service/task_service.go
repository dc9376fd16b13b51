package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/cache"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskPage is the pagination envelope returned by list operations.
type TaskPage struct {
	Items      []model.Task `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int64        `json:"total_pages"`
}

// TaskUpdate carries the optional fields of a partial task update.
// Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

// TaskService handles task operations. Every mutation is owner-only.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint, title, description string, status model.TaskStatus) (*model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	ListTasks(ctx context.Context, q repository.ListQuery) (*TaskPage, error)
	UpdateTask(ctx context.Context, id, callerID uint, upd TaskUpdate) (*model.Task, error)
	CompleteTask(ctx context.Context, id, callerID uint) (*model.Task, error)
	DeleteTask(ctx context.Context, id, callerID uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

func (s *taskService) cacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

// requireOwner is the single authorization predicate applied before every
// mutating operation.
func requireOwner(task *model.Task, callerID uint) error {
	if task.UserID != callerID {
		return apperrors.ErrNotTaskOwner
	}
	return nil
}

// CreateTask creates a task owned by ownerID.
func (s *taskService) CreateTask(ctx context.Context, ownerID uint, title, description string, status model.TaskStatus) (*model.Task, error) {
	if status == "" {
		status = model.StatusNew
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by ID with caching.
func (s *taskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, taskCacheTTL)
	}
	return task, nil
}

// ListTasks runs the filtered query and wraps the page in its envelope.
func (s *taskService) ListTasks(ctx context.Context, q repository.ListQuery) (*TaskPage, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if items == nil {
		items = []model.Task{}
	}

	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(q.Limit) - 1) / int64(q.Limit)
	}

	return &TaskPage{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateTask applies a partial update to a task the caller owns.
func (s *taskService) UpdateTask(ctx context.Context, id, callerID uint, upd TaskUpdate) (*model.Task, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	var updated *model.Task
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrTaskNotFound
			}
			return err
		}
		if err := requireOwner(task, callerID); err != nil {
			return err
		}

		if upd.Title != nil {
			task.Title = *upd.Title
		}
		if upd.Description != nil {
			task.Description = *upd.Description
		}
		if upd.Status != nil {
			task.Status = *upd.Status
		}

		if err := repo.Save(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return updated, nil
}

// CompleteTask sets the task status to Completed. Idempotent: completing an
// already completed task succeeds without writing.
func (s *taskService) CompleteTask(ctx context.Context, id, callerID uint) (*model.Task, error) {
	var completed *model.Task
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrTaskNotFound
			}
			return err
		}
		if err := requireOwner(task, callerID); err != nil {
			return err
		}

		if task.Status != model.StatusCompleted {
			task.Status = model.StatusCompleted
			if err := repo.Save(ctx, task); err != nil {
				return err
			}
		}
		completed = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return completed, nil
}

// DeleteTask permanently removes a task the caller owns.
func (s *taskService) DeleteTask(ctx context.Context, id, callerID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		task, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrTaskNotFound
			}
			return err
		}
		if err := requireOwner(task, callerID); err != nil {
			return err
		}
		return repo.Delete(ctx, task)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
