package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetOutletID extracts the caller's outlet ID from the Gin context
func GetOutletID(c *gin.Context) uint {
	outletVal, exists := c.Get("outlet_id")
	if !exists {
		return 0
	}
	outletID, ok := outletVal.(uint)
	if !ok {
		return 0
	}
	return outletID
}

// IsAdmin checks if the caller has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == entity.RoleAdmin
}
