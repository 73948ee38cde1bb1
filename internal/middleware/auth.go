package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/constants"
	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/services"
)

const contextKeyIdentity = "identity"

// WithIdentity resolves the session's user id to an identity on every
// request. Pages observe sign-in and sign-out through this single
// point; when no session exists the request carries no identity and no
// lookup is made.
func WithIdentity(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			c.Next()
			return
		}

		user, err := authService.GetUser(c.Request.Context(), userID)
		if err != nil {
			// Stale session (deleted account or lookup failure):
			// drop it and continue signed out.
			session.Clear()
			_ = session.Save()
			c.Next()
			return
		}

		identity := models.IdentityOf(*user)
		SetIdentity(c, &identity)
		c.Next()
	}
}

// SetIdentity attaches an identity to the request context.
func SetIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(contextKeyIdentity, identity)
}

// CurrentIdentity returns the signed-in identity, or nil when the
// request is anonymous.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, exists := c.Get(contextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
