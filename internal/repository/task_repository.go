package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
	// List returns one page of tasks matching the query plus the total
	// number of matching rows before pagination.
	List(ctx context.Context, q ListQuery) ([]model.Task, int64, error)
	// WithTransaction executes fn inside a database transaction; the
	// repository passed to fn operates on that transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

// List composes a single filtered query, counts the matching rows, then
// fetches the requested page with a deterministic order. Sorting always
// ends with an id ASC tiebreak so adjacent pages never repeat or skip a
// row for fixed data.
func (r *taskRepository) List(ctx context.Context, q ListQuery) ([]model.Task, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Task{})

	if q.OwnerID != nil {
		db = db.Where("user_id = ?", *q.OwnerID)
	}
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.Q != "" {
		pattern := "%" + strings.ToLower(q.Q) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// SortBy and SortDir are closed enums, so interpolation here is safe.
	db = db.Order(fmt.Sprintf("%s %s", q.SortBy, q.SortDir))
	if q.SortBy != SortByID {
		db = db.Order("id ASC")
	}

	var tasks []model.Task
	if err := db.Offset(q.Offset()).Limit(q.Limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *taskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &taskRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
