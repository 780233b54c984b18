package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/nusapress/articles-api/internal/api/middleware"
	"github.com/nusapress/articles-api/internal/core/domain"
)

// DocsHandler serves the root endpoint catalog and the auth test endpoint.
type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// Root handles GET / with a human-readable API overview.
//
// @Summary      API documentation
// @Tags         docs
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func (h *DocsHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Articles API",
		"description": "Article publishing with token authentication and role-based authorization",
		"endpoints": map[string]map[string]string{
			"public": {
				"GET /":               "API documentation",
				"GET /articles":       "List published articles",
				"GET /articles/:id":   "Get a published article",
				"POST /auth/register": "Register a new user",
				"POST /auth/login":    "Login",
			},
			"protected": {
				"POST /articles":       "Create an article (login required)",
				"PUT /articles/:id":    "Update an article (owner or admin)",
				"DELETE /articles/:id": "Delete an article (owner or admin)",
				"GET /articles-admin":  "List every article (admin only)",
				"GET /profile":         "Own profile (login required)",
			},
		},
		"test_users": map[string]map[string]string{
			"admin":  {"email": "admin@test.com", "password": "admin123"},
			"member": {"email": "member1@test.com", "password": "member123"},
		},
	})
}

type testAuthResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *domain.User `json:"user"`
}

// TestAuth handles GET /test-auth: it reports the resolved identity without
// ever rejecting the request, which makes the resolver's collapse to
// anonymous directly observable.
//
// @Summary      Inspect the request's resolved identity
// @Tags         docs
// @Produce      json
// @Success      200  {object}  testAuthResponse
// @Router       /test-auth [get]
func (h *DocsHandler) TestAuth(c echo.Context) error {
	user := apimiddleware.CurrentUser(c)
	return c.JSON(http.StatusOK, testAuthResponse{
		IsAuthenticated: user != nil,
		User:            user,
	})
}
