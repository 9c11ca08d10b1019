package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/jwt"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/redis"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserID     = "user_id"
	CtxRole       = "role"
	CtxDepartment = "department"
	CtxToken      = "token"
)

// roleRank orders roles for hierarchy checks; higher outranks lower.
var roleRank = map[string]int{
	model.RoleStudent:   1,
	model.RoleFaculty:   2,
	model.RoleHOD:       3,
	model.RolePrincipal: 4,
	model.RoleAdmin:     5,
}

// AccountChecker reports whether an authenticated account is still
// allowed to act. Implemented by the auth service.
type AccountChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// JWTAuth verifies the Bearer access token and loads the caller's
// identity into the request context. A deactivated account is rejected
// even while its token is still valid. rdb may be nil; revocation
// checks are then skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, accounts AccountChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, 10002, "token expired")
			} else {
				response.Unauthorized(c, 10002, "invalid token")
			}
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis being down must not lock everyone out.
				logger.Warn("token blacklist check failed", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		if accounts != nil {
			active, err := accounts.IsActive(c.Request.Context(), claims.UserID)
			if err != nil {
				logger.Warn("account status check failed", zap.String("user_id", claims.UserID), zap.Error(err))
			} else if !active {
				response.Unauthorized(c, 10002, "account deactivated")
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxDepartment, claims.Department)
		c.Set(CtxToken, parts[1])
		c.Next()
	}
}

// RequireRoles allows only the named roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(CtxRole)] {
			response.Forbidden(c, 10003, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MinRole allows the named role and everything above it.
func MinRole(role string) gin.HandlerFunc {
	min := roleRank[role]
	return func(c *gin.Context) {
		if roleRank[c.GetString(CtxRole)] < min {
			response.Forbidden(c, 10003, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// FacultyAndAbove allows faculty, hod, principal and admin.
func FacultyAndAbove() gin.HandlerFunc { return MinRole(model.RoleFaculty) }

// HODAndAbove allows hod, principal and admin.
func HODAndAbove() gin.HandlerFunc { return MinRole(model.RoleHOD) }

// AdminOnly allows only admin.
func AdminOnly() gin.HandlerFunc { return RequireRoles(model.RoleAdmin) }
