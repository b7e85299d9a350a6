package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chefai/chefai/internal/container"
	handlers "github.com/chefai/chefai/internal/interface/http"
	"github.com/chefai/chefai/internal/interface/middleware"
)

// RecipeModule wires the recipe generation endpoint.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
}

func NewRecipeModule(h *handlers.RecipeHandler) *RecipeModule {
	return &RecipeModule{Handler: h}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP())
	rg.POST("/recipes", limiter, m.Handler.Generate)
}
