package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapi/internal/config"
	"todoapi/internal/db"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

type seedUser struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Tasks     []model.Task
}

var fixtures = []seedUser{
	{
		FirstName: "Farida",
		LastName:  "Ismayilova",
		Username:  "farida",
		Password:  "StrongPass1",
		Tasks: []model.Task{
			{Title: "Buy milk", Description: "2L, lactose free", Status: model.StatusNew},
			{Title: "Buy bread", Status: model.StatusNew},
			{Title: "Pay rent", Status: model.StatusCompleted},
		},
	},
	{
		FirstName: "Demo",
		Username:  "demo",
		Password:  "demo-pass",
		Tasks: []model.Task{
			{Title: "Read the docs", Description: "Start with /swagger", Status: model.StatusInProgress},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, fixture := range fixtures {
		if _, err := userRepo.FindByUsername(ctx, fixture.Username); err == nil {
			log.Printf("User %q already exists, skipping", fixture.Username)
			skipped++
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up user %q: %v", fixture.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %q: %v", fixture.Username, err)
		}

		user := &model.User{
			FirstName:    fixture.FirstName,
			LastName:     fixture.LastName,
			Username:     fixture.Username,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", fixture.Username, err)
		}

		for _, task := range fixture.Tasks {
			task.UserID = user.ID
			if err := taskRepo.Create(ctx, &task); err != nil {
				log.Fatalf("Failed to create task %q: %v", task.Title, err)
			}
		}

		log.Printf("Seeded user %q with %d tasks", fixture.Username, len(fixture.Tasks))
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users skipped (already present): %d", skipped)
}
