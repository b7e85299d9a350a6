package entity

// Recipe source tags. Clients use these to distinguish a generated recipe
// from the deterministic mock.
const (
	RecipeSourceOpenAI = "openai"
	RecipeSourceMock   = "mock"
)

type RecipeIngredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount,omitempty"`
}

// Recipe is the wire shape of a generated recipe.
type Recipe struct {
	Title            string             `json:"title"`
	TimeMinutes      int                `json:"timeMinutes"`
	CaloriesEstimate int                `json:"caloriesEstimate,omitempty"`
	Servings         int                `json:"servings"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	Instructions     []string           `json:"instructions"`
	Notes            string             `json:"notes,omitempty"`
	Source           string             `json:"source"`
}
