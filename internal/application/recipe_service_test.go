package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chefai/chefai/internal/domain/entity"
)

type stubGenerator struct {
	rec *entity.Recipe
	err error
}

func (s *stubGenerator) GenerateRecipe(context.Context, []string, string, int) (*entity.Recipe, error) {
	return s.rec, s.err
}

func TestGenerateMockWithoutGenerator(t *testing.T) {
	svc := NewRecipeService(nil, quietLogger())

	rec := svc.Generate(context.Background(), RecipeRequest{Ingredients: []string{"egg", "rice"}, Servings: 2})
	require.Equal(t, entity.RecipeSourceMock, rec.Source)
	require.Equal(t, "egg-Forward Quick Bowl", rec.Title)
	require.Equal(t, 20, rec.TimeMinutes)
	require.Equal(t, 450, rec.CaloriesEstimate)
	require.Equal(t, 2, rec.Servings)
	require.Len(t, rec.Ingredients, 2)
	require.Equal(t, "to taste", rec.Ingredients[0].Amount)
	require.Len(t, rec.Instructions, 4)
	require.Contains(t, rec.Instructions[1], "egg, rice")
}

func TestGenerateMockNotesFromPreferences(t *testing.T) {
	svc := NewRecipeService(nil, quietLogger())

	rec := svc.Generate(context.Background(), RecipeRequest{Ingredients: []string{"tofu"}, Preferences: "vegan", Servings: 4})
	require.Contains(t, rec.Notes, "Tailored for: vegan")

	rec = svc.Generate(context.Background(), RecipeRequest{Ingredients: []string{"tofu"}, Servings: 4})
	require.Contains(t, rec.Notes, "Adjust seasoning to preference")
}

func TestGenerateUsesGenerator(t *testing.T) {
	want := &entity.Recipe{Title: "Real Dish", Source: entity.RecipeSourceOpenAI}
	svc := NewRecipeService(&stubGenerator{rec: want}, quietLogger())

	rec := svc.Generate(context.Background(), RecipeRequest{Ingredients: []string{"egg"}, Servings: 2})
	require.Equal(t, want, rec)
}

func TestGenerateFallsBackOnGeneratorError(t *testing.T) {
	svc := NewRecipeService(&stubGenerator{err: errors.New("upstream down")}, quietLogger())

	rec := svc.Generate(context.Background(), RecipeRequest{Ingredients: []string{"egg"}, Servings: 2})
	require.Equal(t, entity.RecipeSourceMock, rec.Source)
	require.Contains(t, rec.Title, "egg")
}
