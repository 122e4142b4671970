package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded for first entry", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"space before comma", map[string]string{"X-Forwarded-For": "1.2.3.4 , 5.6.7.8"}, "1.2.3.4"},
		{"forwarded for single", map[string]string{"X-Forwarded-For": " 198.51.100.2 "}, "198.51.100.2"},
		{"forwarded for wins over real ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "192.0.2.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "192.0.2.1"}, "192.0.2.1"},
		{"empty forwarded entry falls through", map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "192.0.2.1"}, "192.0.2.1"},
		{"no headers", nil, UnknownClientKey},
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(ClientKey(c))
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}
