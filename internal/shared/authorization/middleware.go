package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

// RequireRole aborts with 403 unless the authenticated role is one of roles.
func RequireRole(roles ...UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := UserRole(c.GetString(constants.ContextKeyUserRole))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		utils.AbortWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

func RequireStaff() gin.HandlerFunc {
	return RequireRole(RoleAgent, RoleAdmin)
}

// ActorFromContext reads the caller placed in the context by the auth
// middleware. ok is false for anonymous requests.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return Actor{}, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return Actor{}, false
	}
	return Actor{UserID: id, Role: ParseUserRole(c.GetString(constants.ContextKeyUserRole))}, true
}

// CurrentActor is ActorFromContext for handlers: it answers 401 itself when
// the request is anonymous.
func CurrentActor(c *gin.Context) (Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
	}
	return actor, ok
}
