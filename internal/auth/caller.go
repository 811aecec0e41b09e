package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Caller is the verified identity attached to a request by AuthMiddleware.
type Caller struct {
	UserID int
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanActFor reports whether the caller may act on resources owned by userID.
func (c Caller) CanActFor(userID int) bool {
	return c.IsAdmin() || c.UserID == userID
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetCaller(c *gin.Context) (Caller, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return Caller{}, false
	}
	role, _ := c.Get(ctxUserRole)
	roleStr, _ := role.(string)
	return Caller{UserID: id, Role: roleStr}, true
}

// MustCaller returns the request's caller or writes 401 and aborts.
func MustCaller(c *gin.Context) (Caller, bool) {
	caller, ok := GetCaller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return Caller{}, false
	}
	return caller, true
}
