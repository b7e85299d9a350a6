// Package openai is a minimal chat-completions client used for recipe
// generation. Any failure here is absorbed by the caller, which downgrades
// to the deterministic mock generator.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chefai/chefai/internal/domain/entity"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 30 * time.Second
)

type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// recipePayload is the strict-JSON shape the prompt asks the model for.
type recipePayload struct {
	Title            string  `json:"title"`
	TimeMinutes      float64 `json:"timeMinutes"`
	CaloriesEstimate float64 `json:"caloriesEstimate"`
	Servings         float64 `json:"servings"`
	Ingredients      []struct {
		Item   string `json:"item"`
		Amount string `json:"amount"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Notes        string   `json:"notes"`
}

// GenerateRecipe asks the completion API for a recipe built from the given
// ingredients and parses the strict-JSON reply. Missing fields in the
// model's answer are filled with conservative defaults.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string, preferences string, servings int) (*entity.Recipe, error) {
	prefs := preferences
	if prefs == "" {
		prefs = "none"
	}
	prompt := fmt.Sprintf(
		"Create a concise recipe as JSON only. Use these ingredients: %s. Preferences: %s. Servings: %d. \n\n"+
			"Return strictly JSON with keys: title (string), timeMinutes (number), caloriesEstimate (number), "+
			"servings (number), ingredients (array of {item, amount}), instructions (array of strings), "+
			"notes (string). Do not include any extra text.",
		strings.Join(ingredients, ", "), prefs, servings)

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful culinary assistant."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("openai error %d: %s", res.StatusCode, string(text))
	}

	var cr chatResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no content from openai")
	}

	var parsed recipePayload
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &parsed); err != nil {
		return nil, err
	}
	return toRecipe(parsed, ingredients, servings), nil
}

func toRecipe(p recipePayload, ingredients []string, servings int) *entity.Recipe {
	rec := &entity.Recipe{
		Title:            p.Title,
		TimeMinutes:      int(p.TimeMinutes),
		CaloriesEstimate: int(p.CaloriesEstimate),
		Servings:         int(p.Servings),
		Instructions:     p.Instructions,
		Notes:            p.Notes,
		Source:           entity.RecipeSourceOpenAI,
	}
	if rec.Title == "" {
		rec.Title = "Generated Recipe"
	}
	if rec.TimeMinutes == 0 {
		rec.TimeMinutes = 25
	}
	if rec.Servings == 0 {
		rec.Servings = servings
	}
	if len(p.Ingredients) > 0 {
		rec.Ingredients = make([]entity.RecipeIngredient, 0, len(p.Ingredients))
		for _, i := range p.Ingredients {
			rec.Ingredients = append(rec.Ingredients, entity.RecipeIngredient{Item: i.Item, Amount: i.Amount})
		}
	} else {
		rec.Ingredients = make([]entity.RecipeIngredient, 0, len(ingredients))
		for _, i := range ingredients {
			rec.Ingredients = append(rec.Ingredients, entity.RecipeIngredient{Item: i})
		}
	}
	if len(rec.Instructions) == 0 {
		rec.Instructions = []string{"Mix ingredients", "Cook until done", "Serve and enjoy"}
	}
	return rec
}
