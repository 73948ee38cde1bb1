package repository

import (
	"context"
	"time"

	"github.com/skawamoto/campusboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// ListByOwner retrieves all tasks belonging to an owner, oldest first
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)

	// UpdateContent updates the text and due date of a task. Owner,
	// completion flag, and creation timestamp are never touched.
	UpdateContent(ctx context.Context, id, text string, dueDate *time.Time) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines the interface for directory data access
type ProfileRepository interface {
	// Create creates a new directory entry
	Create(ctx context.Context, profile *models.Profile) error

	// FindByID finds a directory entry by ID
	FindByID(ctx context.Context, id string) (*models.Profile, error)

	// ListAll retrieves the full directory, oldest first
	ListAll(ctx context.Context) ([]models.Profile, error)

	// Delete soft deletes a directory entry
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user account data access
type UserRepository interface {
	// Create creates a new user account
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
