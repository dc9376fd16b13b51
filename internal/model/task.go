package model

import (
	"fmt"
	"time"
)

// TaskStatus is the closed set of states a task can be in.
type TaskStatus string

const (
	StatusNew        TaskStatus = "New"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// ParseStatus converts a raw string into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusNew, StatusInProgress, StatusCompleted:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Task is a to-do item owned by exactly one user. Ownership is set at
// creation and never changes.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"size:20;not null;default:'New';index"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
