package requestlog

import (
	"net/http/httptest"
	"testing"

	"pricing-modeller/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(rayid.New())
	app.Use(New(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	tests := []struct {
		path    string
		status  int
		message string
		level   string
	}{
		{path: "/ok", status: fiber.StatusNoContent, message: "Request completed", level: "info"},
		{path: "/missing", status: fiber.StatusNotFound, message: "Request error", level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logs.TakeAll()

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.message, entries[0].Message)
			assert.Equal(t, tt.level, entries[0].Level.String())

			ctx := entries[0].ContextMap()
			assert.Equal(t, int64(tt.status), ctx["status"])
			assert.Equal(t, tt.path, ctx["path"])
			assert.Equal(t, resp.Header.Get(rayid.Header), ctx["ray_id"])
		})
	}
}
