package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and registers them in one pass. API
// modules mount under /api; page modules mount at the engine root behind
// the route guard.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Pages       *gin.RouterGroup
	apiModules  []Module
	pageModules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		API:    engine.Group("/api"),
		Pages:  engine.Group("/"),
	}
}

// UsePages attaches middleware to the page group (the route guard).
func (r *Registry) UsePages(mw ...gin.HandlerFunc) {
	r.Pages.Use(mw...)
}

func (r *Registry) Add(mod Module) {
	r.apiModules = append(r.apiModules, mod)
}

func (r *Registry) AddPages(mod Module) {
	r.pageModules = append(r.pageModules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.apiModules {
		m.Register(r.API)
	}
	for _, m := range r.pageModules {
		m.Register(r.Pages)
	}
}
