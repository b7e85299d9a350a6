package response

import (
	"github.com/gin-gonic/gin"

	"github.com/chefai/chefai/internal/domain/entity"
)

// User is the sanitized user payload returned by the auth endpoints.
// The password hash never leaves the server.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// NewUser sanitizes a domain user for the wire.
func NewUser(u *entity.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// Err writes the contract error shape {"error": msg}.
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortErr writes the error shape and stops the handler chain.
func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
