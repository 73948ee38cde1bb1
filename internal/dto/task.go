package dto

import (
	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/utils"
)

// TaskView represents a task row in the to-do page.
type TaskView struct {
	ID        string
	Text      string
	DueDate   string
	CreatedAt string
	Completed bool
}

// ToTaskView converts a Task model to a TaskView
func ToTaskView(task models.Task) TaskView {
	return TaskView{
		ID:        task.ID,
		Text:      task.Text,
		DueDate:   utils.FormatDueDate(task.DueDate),
		CreatedAt: task.CreatedAt.Format("2006/01/02"),
		Completed: task.Completed,
	}
}

// ToTaskViews converts a slice of tasks for rendering
func ToTaskViews(tasks []models.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = ToTaskView(task)
	}
	return views
}
