package router

import (
	"github.com/chefai/chefai/internal/application"
	"github.com/chefai/chefai/internal/container"
	"github.com/chefai/chefai/internal/infrastructure/jsonfile"
	"github.com/chefai/chefai/internal/infrastructure/openai"
	pginfra "github.com/chefai/chefai/internal/infrastructure/postgres"
	handlers "github.com/chefai/chefai/internal/interface/http"
	"github.com/chefai/chefai/internal/interface/middleware"
	"github.com/chefai/chefai/internal/router/modules"
	"github.com/chefai/chefai/pkg/helpers"
)

func buildAuthHandler() *handlers.AuthHandler {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	primary := pginfra.NewUserRepository(pool, cfg.QueryTimeout)
	fallback := jsonfile.NewUserStore(cfg.UsersFile)
	signups := pginfra.NewSignupRepository(pool, cfg.QueryTimeout)

	svc := application.NewAuthService(primary, fallback, signups, container.GetJWT(), container.GetLogger())
	return handlers.NewAuthHandler(svc, container.GetJWT(), container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
}

func buildRecipeHandler() *handlers.RecipeHandler {
	cfg := container.GetConfig()

	var gen application.RecipeGenerator
	if cfg.OpenAIKey != "" {
		gen = openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	svc := application.NewRecipeService(gen, container.GetLogger())
	return handlers.NewRecipeHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	r.Add(modules.NewAuthModule(buildAuthHandler()))
	r.Add(modules.NewRecipeModule(buildRecipeHandler()))

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	r.UsePages(middleware.RouteGuard(container.GetJWT(), cookies))
	r.AddPages(modules.NewPagesModule(handlers.NewPageHandler()))
}
