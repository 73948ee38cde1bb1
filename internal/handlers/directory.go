package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/dto"
	apierrors "github.com/skawamoto/campusboard/internal/errors"
	"github.com/skawamoto/campusboard/internal/flash"
	"github.com/skawamoto/campusboard/internal/middleware"
	"github.com/skawamoto/campusboard/internal/services"
)

// DirectoryHandler serves the user directory pages: listing, add,
// delete, and search.
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// Index renders the directory listing. Anonymous visitors see the
// page chrome with a sign-in prompt and no directory data is fetched.
func (h *DirectoryHandler) Index(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		c.HTML(http.StatusOK, "index.html", pageData(c, gin.H{}))
		return
	}

	profiles, err := h.directoryService.List(c.Request.Context())
	if err != nil {
		apierrors.InternalErrorPage(c, "Failed to load the directory")
		return
	}

	c.HTML(http.StatusOK, "index.html", pageData(c, gin.H{
		"Profiles": dto.ToProfileViews(profiles),
	}))
}

// ShowAdd renders the add-user form.
func (h *DirectoryHandler) ShowAdd(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		renderLoginPrompt(c)
		return
	}

	c.HTML(http.StatusOK, "add.html", pageData(c, gin.H{
		"Name": "",
		"Mail": "",
		"Dorm": true,
	}))
}

// Add creates a directory entry and returns to the listing.
func (h *DirectoryHandler) Add(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		renderLoginPrompt(c)
		return
	}

	input := services.AddInput{
		Name: c.PostForm("name"),
		Mail: c.PostForm("mail"),
		Dorm: c.PostForm("dorm") == "true",
	}

	_, err := h.directoryService.Add(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) || errors.Is(err, services.ErrMailRequired) {
			// Required-field misses re-render the form with the
			// buffers intact and no notification.
			c.HTML(http.StatusOK, "add.html", pageData(c, gin.H{
				"Name": input.Name,
				"Mail": input.Mail,
				"Dorm": input.Dorm,
			}))
			return
		}
		flash.Error(c, "Failed to add user: "+err.Error())
		c.HTML(http.StatusOK, "add.html", pageData(c, gin.H{
			"Name": input.Name,
			"Mail": input.Mail,
			"Dorm": input.Dorm,
		}))
		return
	}

	flash.Info(c, "User added")
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowDelete renders the directory with per-row delete buttons.
func (h *DirectoryHandler) ShowDelete(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		renderLoginPrompt(c)
		return
	}

	profiles, err := h.directoryService.List(c.Request.Context())
	if err != nil {
		apierrors.InternalErrorPage(c, "Failed to load the directory")
		return
	}

	c.HTML(http.StatusOK, "delete.html", pageData(c, gin.H{
		"Profiles": dto.ToProfileViews(profiles),
	}))
}

// Delete removes a directory entry. The first POST renders a
// confirmation page; only a confirmed POST reaches the service.
func (h *DirectoryHandler) Delete(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		renderLoginPrompt(c)
		return
	}

	id := c.Param("id")

	if c.PostForm("confirm") != "yes" {
		h.renderDeleteConfirm(c, id)
		return
	}

	if err := h.directoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			flash.Error(c, "User not found")
		} else {
			flash.Error(c, "Failed to delete user: "+err.Error())
		}
		c.Redirect(http.StatusSeeOther, "/delete")
		return
	}

	flash.Info(c, "User deleted")
	c.Redirect(http.StatusSeeOther, "/delete")
}

func (h *DirectoryHandler) renderDeleteConfirm(c *gin.Context, id string) {
	profile, err := h.directoryService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			apierrors.NotFoundPage(c, "User not found")
			return
		}
		apierrors.InternalErrorPage(c, "Failed to load the directory")
		return
	}

	view := dto.ToProfileView(*profile)
	detail := view.Name + " - " + view.Mail + " - " + view.Dorm

	c.HTML(http.StatusOK, "confirm.html", pageData(c, gin.H{
		"Title":     "Delete this user?",
		"Detail":    detail,
		"Action":    "/delete/" + id,
		"CancelURL": "/delete",
	}))
}

// Find renders the directory search page. The filter is recomputed
// on every request from the full snapshot.
func (h *DirectoryHandler) Find(c *gin.Context) {
	if middleware.CurrentIdentity(c) == nil {
		renderLoginPrompt(c)
		return
	}

	keyword := c.Query("q")
	profiles, err := h.directoryService.Find(c.Request.Context(), keyword)
	if err != nil {
		apierrors.InternalErrorPage(c, "Failed to search the directory")
		return
	}

	c.HTML(http.StatusOK, "find.html", pageData(c, gin.H{
		"Keyword":  keyword,
		"Profiles": dto.ToProfileViews(profiles),
	}))
}
