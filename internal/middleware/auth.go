package middleware

import (
	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// Identity resolves what the request carries without enforcing anything.
// An X-Student-Code header is looked up to a student row id; a bearer token
// is parsed and checked against a live session row. Missing, unknown or
// malformed credentials all resolve to anonymous; individual endpoints
// decide what they require.
func Identity(cfg *config.Config, users *repository.UserRepository, students *repository.StudentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code := c.GetHeader("X-Student-Code"); code != "" {
			if student, err := students.FindByCode(code); err == nil {
				c.Set("studentID", student.ID)
			}
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := util.ParseJWT(token, cfg.JWT.Secret); err == nil {
				// A valid signature is not enough: the session row must
				// still exist, so revoked tokens die before their exp.
				if _, err := users.FindLiveSession(token); err == nil {
					c.Set("user", claims)
					c.Set("token", token)
				}
			}
		}

		c.Next()
	}
}

// RequireStudent guards endpoints that need a resolved student identity.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetStudentIDFromContext(c) == "" {
			util.Unauthorized(c, "student code required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUser guards admin endpoints open to any authenticated back-office user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetUserFromContext(c) == nil {
			util.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole guards endpoints restricted to the given roles. Superadmins
// always pass.
func RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if user.Role == model.SuperAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c, "insufficient role")
		c.Abort()
	}
}

// RequireOrchestratorKey guards the lab status callback. The orchestrator is
// a trusted external service identified by a shared key.
func RequireOrchestratorKey(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Orchestrator-Key")
		if cfg.Lab.OrchestratorKey == "" || key != cfg.Lab.OrchestratorKey {
			util.Unauthorized(c, "orchestrator key required")
			c.Abort()
			return
		}
		c.Next()
	}
}
