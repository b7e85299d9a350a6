package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chefai/chefai/internal/container"
	handlers "github.com/chefai/chefai/internal/interface/http"
	"github.com/chefai/chefai/internal/interface/middleware"
)

// AuthModule wires the credential workflow endpoints.
// Public: POST /api/auth/register, /login, /logout; GET /api/auth/validate.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.GET("/auth/validate", m.Handler.Validate)
}
