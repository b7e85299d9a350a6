package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chefai/chefai/internal/domain/entity"
)

// RecipeGenerator is the external completion API. A nil generator means no
// API key is configured and every request uses the mock.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients []string, preferences string, servings int) (*entity.Recipe, error)
}

type RecipeRequest struct {
	Ingredients []string `json:"ingredients"`
	Preferences string   `json:"preferences"`
	Servings    int      `json:"servings"`
}

// RecipeService produces a recipe for every well-formed request: the
// external generator when available, the deterministic mock otherwise.
// Generator failures are absorbed, never surfaced to the caller.
type RecipeService struct {
	Generator RecipeGenerator
	Logger    *logrus.Logger
}

func NewRecipeService(gen RecipeGenerator, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Generator: gen, Logger: logger}
}

func (s *RecipeService) Generate(ctx context.Context, req RecipeRequest) *entity.Recipe {
	if s.Generator != nil {
		rec, err := s.Generator.GenerateRecipe(ctx, req.Ingredients, req.Preferences, req.Servings)
		if err == nil {
			return rec
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("recipe generation failed, falling back to mock")
		}
	}
	return s.mock(req)
}

func (s *RecipeService) mock(req RecipeRequest) *entity.Recipe {
	ingredients := make([]entity.RecipeIngredient, 0, len(req.Ingredients))
	for _, i := range req.Ingredients {
		ingredients = append(ingredients, entity.RecipeIngredient{Item: i, Amount: "to taste"})
	}

	notes := "Adjust seasoning to preference. Add herbs or citrus for brightness."
	if req.Preferences != "" {
		notes = fmt.Sprintf("Tailored for: %s. Adjust seasoning accordingly.", req.Preferences)
	}

	return &entity.Recipe{
		Title:            fmt.Sprintf("%s-Forward Quick Bowl", req.Ingredients[0]),
		TimeMinutes:      20,
		CaloriesEstimate: 450,
		Servings:         req.Servings,
		Ingredients:      ingredients,
		Instructions: []string{
			"Prep all ingredients and wash/trim as needed.",
			fmt.Sprintf("Sauté aromatics, then add %s.", strings.Join(req.Ingredients, ", ")),
			"Season, adjust texture with stock or water.",
			"Plate, garnish, and serve warm.",
		},
		Notes:  notes,
		Source: entity.RecipeSourceMock,
	}
}
