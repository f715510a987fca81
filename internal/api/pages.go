package api

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page shells. The browser UI is a thin layer over the JSON API; these
// handlers exist so the guarded paths and the login redirect contract are
// part of the server itself.

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · RentNest</title>
</head>
<body>
<main id="app" data-view="%s"%s></main>
</body>
</html>
`

func (h *Handler) renderPage(c *gin.Context, title, view, extra string) {
	body := fmt.Sprintf(pageTemplate, html.EscapeString(title), view, extra)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func (h *Handler) HomePage(c *gin.Context) {
	h.renderPage(c, "Find your next home", "home", "")
}

// LoginPage renders the login view. A missing redirect parameter is fine
// and falls back to the home path.
func (h *Handler) LoginPage(c *gin.Context) {
	redirect := c.DefaultQuery("redirect", "/")
	extra := fmt.Sprintf(` data-redirect="%s"`, html.EscapeString(redirect))
	h.renderPage(c, "Sign in", "login", extra)
}

func (h *Handler) SignUpPage(c *gin.Context) {
	h.renderPage(c, "Create an account", "signup", "")
}

func (h *Handler) SearchPage(c *gin.Context) {
	h.renderPage(c, "Search rentals", "search", "")
}

func (h *Handler) DashboardPage(c *gin.Context) {
	h.renderPage(c, "Dashboard", "dashboard", "")
}

func (h *Handler) NewListingPage(c *gin.Context) {
	h.renderPage(c, "List a property", "property-new", "")
}
