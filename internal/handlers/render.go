package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/flash"
	"github.com/skawamoto/campusboard/internal/middleware"
)

// pageData assembles the fields every template expects (identity and
// pending flash messages) plus the page-specific ones.
func pageData(c *gin.Context, fields gin.H) gin.H {
	data := gin.H{
		"Identity": middleware.CurrentIdentity(c),
		"Flash":    flash.Take(c),
	}
	for k, v := range fields {
		data[k] = v
	}
	return data
}

// renderLoginPrompt renders the sign-in page in place of a gated
// page's content. No repository call is made for anonymous visitors.
func renderLoginPrompt(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{
		"Prompt": "Please sign in to view this page.",
	}))
}
