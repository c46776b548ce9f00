package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "BEARER   abc ", token: "abc", ok: true},
		{header: "Basic abc", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		token, ok := ExtractBearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.token, token, "header %q", tt.header)
	}
}

func TestBearerToken(t *testing.T) {
	app := fiber.New()
	app.Use(BearerToken("secret", "/health"))
	app.Get("/health", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/trial-apps", func(c fiber.Ctx) error { return c.SendString("apps") })

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "health is open", path: "/health", status: http.StatusOK},
		{name: "missing token", path: "/trial-apps", status: http.StatusUnauthorized},
		{name: "wrong token", path: "/trial-apps", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/trial-apps", header: "Token secret", status: http.StatusUnauthorized},
		{name: "valid token", path: "/trial-apps", header: "Bearer secret", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestBearerToken_EmptyTokenDisablesCheck(t *testing.T) {
	app := fiber.New()
	app.Use(BearerToken(""))
	app.Get("/trial-apps", func(c fiber.Ctx) error { return c.SendString("apps") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trial-apps", nil))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
