package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTextRequired     = errors.New("task text is required")
	ErrIdentityRequired = errors.New("sign in to save tasks")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotTaskOwner     = errors.New("task belongs to another user")
)

// TodoService owns the to-do list of the signed-in identity. Every
// mutation is followed by a fresh Load on the next render, so the list
// a user sees is always a complete re-read of the backing store.
type TodoService struct {
	taskRepo repository.TaskRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(taskRepo repository.TaskRepository) *TodoService {
	return &TodoService{
		taskRepo: taskRepo,
	}
}

// Load returns the tasks belonging to identity, oldest first. A nil
// identity yields an empty list without touching the store. Safe to
// call any number of times.
func (s *TodoService) Load(ctx context.Context, identity *models.Identity) ([]models.Task, error) {
	if identity == nil {
		return []models.Task{}, nil
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

// SaveInput represents a submitted task form.
type SaveInput struct {
	Text    string
	DueDate *time.Time
	// EditID is the id of the task being edited, or empty when
	// creating a new one.
	EditID string
}

// Save creates a new task or, when EditID is set, updates the text and
// due date of an existing owned task. Owner and creation timestamp are
// immutable once set.
func (s *TodoService) Save(ctx context.Context, identity *models.Identity, input SaveInput) error {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return ErrTextRequired
	}
	if identity == nil {
		return ErrIdentityRequired
	}

	if input.EditID != "" {
		if _, err := s.findOwned(ctx, identity, input.EditID); err != nil {
			return err
		}
		if err := s.taskRepo.UpdateContent(ctx, input.EditID, text, input.DueDate); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	}

	task := &models.Task{
		OwnerID:   identity.ID,
		Text:      text,
		DueDate:   input.DueDate,
		Completed: false,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Delete removes an owned task by id. Confirmation is the caller's
// responsibility; unconfirmed requests must never reach this method.
func (s *TodoService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if identity == nil {
		return ErrIdentityRequired
	}

	if _, err := s.findOwned(ctx, identity, id); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Get returns a single owned task, used to prefill the edit form.
func (s *TodoService) Get(ctx context.Context, identity *models.Identity, id string) (*models.Task, error) {
	if identity == nil {
		return nil, ErrIdentityRequired
	}
	return s.findOwned(ctx, identity, id)
}

func (s *TodoService) findOwned(ctx context.Context, identity *models.Identity, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.OwnerID != identity.ID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}
