package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/chefai/chefai/internal/interface/http"
)

// PagesModule registers the navigational pages the route guard gates.
type PagesModule struct {
	Handler *handlers.PageHandler
}

func NewPagesModule(h *handlers.PageHandler) *PagesModule {
	return &PagesModule{Handler: h}
}

func (m *PagesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Show("home", "Cook smarter with what you have"))
	rg.GET("/login", m.Handler.Show("login", "Sign in"))
	rg.GET("/register", m.Handler.Show("register", "Create your account"))
	rg.GET("/dashboard", m.Handler.Show("dashboard", "Dashboard"))
	rg.GET("/profile", m.Handler.Show("profile", "Profile"))
	rg.GET("/settings", m.Handler.Show("settings", "Settings"))
	rg.GET("/chat", m.Handler.Show("chat", "Chat assistant"))
	rg.GET("/recipes", m.Handler.Show("recipes", "Recipes"))
}
