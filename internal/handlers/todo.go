package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/dto"
	apierrors "github.com/skawamoto/campusboard/internal/errors"
	"github.com/skawamoto/campusboard/internal/flash"
	"github.com/skawamoto/campusboard/internal/middleware"
	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/services"
	"github.com/skawamoto/campusboard/internal/utils"
)

// TodoHandler serves the per-identity to-do list.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// Show renders the to-do page: the form plus the owned tasks, freshly
// loaded. `?edit=<id>` prefills the form from that task (BeginEdit).
// Anonymous visitors get the sign-in prompt and no load happens.
func (h *TodoHandler) Show(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		renderLoginPrompt(c)
		return
	}

	tasks, err := h.todoService.Load(c.Request.Context(), identity)
	if err != nil {
		apierrors.InternalErrorPage(c, "Failed to load tasks")
		return
	}

	var text, dueDate, editID string
	if id := c.Query("edit"); id != "" {
		task, err := h.todoService.Get(c.Request.Context(), identity, id)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) || errors.Is(err, services.ErrNotTaskOwner) {
				flash.Error(c, "Task not found")
			} else {
				flash.Error(c, "Failed to open the task for editing")
			}
			c.Redirect(http.StatusSeeOther, "/todo")
			return
		}
		view := dto.ToTaskView(*task)
		text, dueDate, editID = view.Text, view.DueDate, view.ID
	}

	c.HTML(http.StatusOK, "todo.html", pageData(c, gin.H{
		"Tasks":   dto.ToTaskViews(tasks),
		"Text":    text,
		"DueDate": dueDate,
		"EditID":  editID,
	}))
}

// Save handles the task form: create when no edit target is set,
// otherwise update the targeted task's text and due date. Successful
// saves redirect, which clears the form and re-loads the list;
// failures re-render with the buffers intact.
func (h *TodoHandler) Save(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	text := c.PostForm("text")
	dueDateRaw := c.PostForm("due_date")
	editID := c.PostForm("edit_id")

	dueDate, err := h.parseDueDate(c, dueDateRaw)
	if err != nil {
		h.rerenderForm(c, identity, text, dueDateRaw, editID)
		return
	}

	err = h.todoService.Save(c.Request.Context(), identity, services.SaveInput{
		Text:    text,
		DueDate: dueDate,
		EditID:  editID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTextRequired):
			// Empty text blocks the save silently; nothing was
			// written, so just show the form again.
		case errors.Is(err, services.ErrIdentityRequired):
			flash.Error(c, "Sign in to save tasks")
			c.Redirect(http.StatusSeeOther, "/todo")
			return
		case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrNotTaskOwner):
			flash.Error(c, "Task not found")
			c.Redirect(http.StatusSeeOther, "/todo")
			return
		default:
			flash.Error(c, "Failed to save the task")
		}
		h.rerenderForm(c, identity, text, dueDateRaw, editID)
		return
	}

	c.Redirect(http.StatusSeeOther, "/todo")
}

// Delete removes an owned task. The first POST renders a confirmation
// page; only a confirmed POST reaches the service. Either way the
// follow-up render re-loads the list.
func (h *TodoHandler) Delete(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		renderLoginPrompt(c)
		return
	}

	id := c.Param("id")

	if c.PostForm("confirm") != "yes" {
		h.renderDeleteConfirm(c, identity, id)
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), identity, id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) || errors.Is(err, services.ErrNotTaskOwner) {
			flash.Error(c, "Task not found")
		} else {
			flash.Error(c, "Failed to delete the task")
		}
		c.Redirect(http.StatusSeeOther, "/todo")
		return
	}

	flash.Info(c, "Task deleted")
	c.Redirect(http.StatusSeeOther, "/todo")
}

func (h *TodoHandler) renderDeleteConfirm(c *gin.Context, identity *models.Identity, id string) {
	task, err := h.todoService.Get(c.Request.Context(), identity, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) || errors.Is(err, services.ErrNotTaskOwner) {
			apierrors.NotFoundPage(c, "Task not found")
			return
		}
		apierrors.InternalErrorPage(c, "Failed to load the task")
		return
	}

	view := dto.ToTaskView(*task)
	detail := view.Text
	if view.DueDate != "" {
		detail += " (due " + view.DueDate + ")"
	}

	c.HTML(http.StatusOK, "confirm.html", pageData(c, gin.H{
		"Title":     "Delete this task?",
		"Detail":    detail,
		"Action":    "/todo/" + id + "/delete",
		"CancelURL": "/todo",
	}))
}

func (h *TodoHandler) parseDueDate(c *gin.Context, raw string) (*time.Time, error) {
	dueDate, err := utils.ParseDueDate(raw)
	if err != nil {
		flash.Error(c, "Invalid due date")
		return nil, err
	}
	return dueDate, nil
}

// rerenderForm shows the to-do page again with the submitted buffers
// preserved.
func (h *TodoHandler) rerenderForm(c *gin.Context, identity *models.Identity, text, dueDate, editID string) {
	tasks, err := h.todoService.Load(c.Request.Context(), identity)
	if err != nil {
		apierrors.InternalErrorPage(c, "Failed to load tasks")
		return
	}

	c.HTML(http.StatusOK, "todo.html", pageData(c, gin.H{
		"Tasks":   dto.ToTaskViews(tasks),
		"Text":    text,
		"DueDate": dueDate,
		"EditID":  editID,
	}))
}
