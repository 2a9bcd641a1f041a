package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"vocabulary/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRequired(t *testing.T) {
	app := fiber.New()
	app.Use(APIKeyRequired("s3cret"))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "Missing X-API-KEY header."},
		{"wrong key", "guess", fiber.StatusForbidden, "Invalid API key."},
		{"valid key", "s3cret", fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.wantMsg == "" {
				assert.Equal(t, "pong", string(body))
				return
			}
			var env dto.APIResponse
			require.NoError(t, json.Unmarshal(body, &env))
			assert.Equal(t, dto.CodeError, env.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}
