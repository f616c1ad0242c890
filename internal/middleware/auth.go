package middleware

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/constants"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/services"
)

// UserLookup resolves the user stored in a session.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth checks that the session belongs to an existing user and stores
// the caller as a services.Actor in the request context.
func RequireAuth(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if _, known := apierrors.KindOf(err); known {
				// The account is gone; drop the stale session.
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "")
			} else {
				apierrors.Respond(c, err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyActor, services.Actor{UserID: user.ID, Email: user.Email})
		c.Next()
	}
}

// GetActor retrieves the authenticated caller from context
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}
