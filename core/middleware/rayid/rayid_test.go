package rayid

import (
	"net/http/httptest"
	"strings"
	"testing"

	"pricing-modeller/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(logger.RayID(c))
	})

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{name: "Generated", incoming: ""},
		{name: "Reused", incoming: "client-trace-1", reused: true},
		{name: "Too long", incoming: strings.Repeat("x", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.incoming != "" {
				req.Header.Set(Header, tt.incoming)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			rid := resp.Header.Get(Header)
			if tt.reused {
				assert.Equal(t, tt.incoming, rid)
			} else {
				_, err := uuid.Parse(rid)
				assert.NoError(t, err)
			}

			body := make([]byte, 128)
			n, _ := resp.Body.Read(body)
			assert.Equal(t, rid, string(body[:n]))
		})
	}
}
