package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/constants"
	"github.com/skawamoto/campusboard/internal/flash"
	"github.com/skawamoto/campusboard/internal/services"
)

// AuthHandler coordinates sign-in, sign-out, and account creation.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ShowLogin renders the sign-in page.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{}))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			flash.Error(c, "Invalid username or password")
		} else {
			flash.Error(c, "Sign-in failed")
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		flash.Error(c, "Failed to save session")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		flash.Error(c, "Failed to sign out")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ShowSignup renders the account creation page.
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", pageData(c, gin.H{}))
}

// Signup registers a new account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Username:    c.PostForm("username"),
		DisplayName: c.PostForm("display_name"),
		Password:    c.PostForm("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameRequired):
			flash.Error(c, "Username is required")
		case errors.Is(err, services.ErrPasswordTooShort):
			flash.Error(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
		case errors.Is(err, services.ErrUsernameTaken):
			flash.Error(c, "Username already exists")
		default:
			flash.Error(c, "Signup failed")
		}
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		flash.Error(c, "Account created, please sign in")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
