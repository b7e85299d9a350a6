package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chefai/chefai/internal/application"
	"github.com/chefai/chefai/pkg/response"
)

type RecipeHandler struct {
	Svc    *application.RecipeService
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *application.RecipeService, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger}
}

// Generate handles POST /api/recipes. Generation itself cannot fail: the
// only error paths are malformed input.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req application.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if len(req.Ingredients) == 0 {
		response.Err(c, http.StatusBadRequest, "Please provide at least one ingredient.")
		return
	}
	req.Preferences = strings.TrimSpace(req.Preferences)
	if req.Servings <= 0 {
		req.Servings = 2
	}

	rec := h.Svc.Generate(c.Request.Context(), req)
	h.Logger.WithFields(logrus.Fields{"source": rec.Source, "ingredients": len(req.Ingredients)}).Debug("recipe generated")
	c.JSON(http.StatusOK, rec)
}
