package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// pageTmpl is a deliberately bare shell: the page surface only exists so
// the route guard has real navigations to gate.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>ChefAI — {{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<div id="app" data-page="{{.Name}}"></div>
</body>
</html>
`))

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Show renders the shell for a named page.
func (h *PageHandler) Show(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(c.Writer, gin.H{"Name": name, "Title": title})
	}
}
