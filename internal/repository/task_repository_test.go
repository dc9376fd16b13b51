package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{FirstName: username, Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTask(t *testing.T, repo repository.TaskRepository, ownerID uint, title, description string, status model.TaskStatus) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, Description: description, Status: status, UserID: ownerID}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func mustQuery(t *testing.T, ownerID *uint, status, q, sortBy, sortDir string, page, limit int) repository.ListQuery {
	t.Helper()
	lq, err := repository.BuildListQuery(ownerID, status, q, sortBy, sortDir, page, limit)
	require.NoError(t, err)
	return lq
}

func TestTaskRepository_ListPaginationIsExhaustive(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "farida")

	const n = 25
	for i := 0; i < n; i++ {
		// Half the titles collide so the id tiebreak matters.
		seedTask(t, repo, owner.ID, fmt.Sprintf("task %d", i%12), "", model.StatusNew)
	}

	seen := map[uint]bool{}
	var pages int
	for page := 1; ; page++ {
		items, total, err := repo.List(ctx, mustQuery(t, nil, "", "", "title", "asc", page, 10))
		require.NoError(t, err)
		require.EqualValues(t, n, total)
		if len(items) == 0 {
			break
		}
		pages++
		for _, item := range items {
			assert.False(t, seen[item.ID], "task %d returned twice", item.ID)
			seen[item.ID] = true
		}
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, seen, n)
}

func TestTaskRepository_ListSortTiebreakIsStable(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "farida")

	for i := 0; i < 6; i++ {
		seedTask(t, repo, owner.ID, "same title", "", model.StatusNew)
	}

	first, _, err := repo.List(ctx, mustQuery(t, nil, "", "", "title", "asc", 1, 3))
	require.NoError(t, err)
	second, _, err := repo.List(ctx, mustQuery(t, nil, "", "", "title", "asc", 2, 3))
	require.NoError(t, err)

	var ids []uint
	for _, item := range append(first, second...) {
		ids = append(ids, item.ID)
	}
	require.Len(t, ids, 6)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids must ascend within equal sort keys")
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()
	farida := seedUser(t, db, "farida")
	other := seedUser(t, db, "other")

	seedTask(t, repo, farida.ID, "Buy milk", "2L milk", model.StatusNew)
	seedTask(t, repo, farida.ID, "Milkshake recipe", "almond MILK", model.StatusInProgress)
	seedTask(t, repo, farida.ID, "Pay rent", "", model.StatusCompleted)
	seedTask(t, repo, other.ID, "Buy milk too", "", model.StatusNew)

	t.Run("status filter", func(t *testing.T) {
		items, total, err := repo.List(ctx, mustQuery(t, nil, "Completed", "", "", "", 0, 0))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Pay rent", items[0].Title)
	})

	t.Run("search matches title or description case-insensitively", func(t *testing.T) {
		items, total, err := repo.List(ctx, mustQuery(t, nil, "", "milk", "", "", 0, 0))
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, item := range items {
			assert.NotEqual(t, "Pay rent", item.Title)
		}
	})

	t.Run("owner restriction", func(t *testing.T) {
		items, total, err := repo.List(ctx, mustQuery(t, &other.ID, "", "", "", "", 0, 0))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, other.ID, items[0].UserID)
	})

	t.Run("combined owner, search and status", func(t *testing.T) {
		_, total, err := repo.List(ctx, mustQuery(t, &farida.ID, "New", "milk", "", "", 0, 0))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})
}

func TestTaskRepository_ListSortDirections(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "farida")

	seedTask(t, repo, owner.ID, "banana", "", model.StatusNew)
	seedTask(t, repo, owner.ID, "apple", "", model.StatusNew)
	seedTask(t, repo, owner.ID, "cherry", "", model.StatusNew)

	asc, _, err := repo.List(ctx, mustQuery(t, nil, "", "", "title", "asc", 0, 0))
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "apple", asc[0].Title)
	assert.Equal(t, "cherry", asc[2].Title)

	desc, _, err := repo.List(ctx, mustQuery(t, nil, "", "", "title", "desc", 0, 0))
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "cherry", desc[0].Title)
	assert.Equal(t, "apple", desc[2].Title)
}

// Mirrors the canonical walkthrough: three tasks, search "buy", first page
// of size one sorted by title.
func TestTaskListing_SearchSortPageExample(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()
	farida := seedUser(t, db, "farida")

	seedTask(t, repo, farida.ID, "Buy milk", "", model.StatusNew)
	seedTask(t, repo, farida.ID, "Buy bread", "", model.StatusNew)
	seedTask(t, repo, farida.ID, "Pay rent", "", model.StatusCompleted)

	svc := service.NewTaskService(repo, nil)
	page, err := svc.ListTasks(ctx, mustQuery(t, &farida.ID, "", "buy", "title", "asc", 1, 1))
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Buy bread", page.Items[0].Title)
	assert.EqualValues(t, 2, page.Total)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Limit)
}

func TestUserRepository_DeleteCascadesTasks(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ctx := context.Background()

	farida := seedUser(t, db, "farida")
	other := seedUser(t, db, "other")
	seedTask(t, taskRepo, farida.ID, "mine 1", "", model.StatusNew)
	seedTask(t, taskRepo, farida.ID, "mine 2", "", model.StatusNew)
	kept := seedTask(t, taskRepo, other.ID, "not mine", "", model.StatusNew)

	require.NoError(t, userRepo.Delete(ctx, farida.ID))

	_, err := userRepo.FindByID(ctx, farida.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "only the other user's task survives")

	survivor, err := taskRepo.FindByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, survivor.UserID)
}

func TestUserRepository_UsernameUnique(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, &model.User{FirstName: "Farida", Username: "farida", PasswordHash: "x"}))
	err := userRepo.Create(ctx, &model.User{FirstName: "Other", Username: "farida", PasswordHash: "y"})
	assert.Error(t, err)
}
