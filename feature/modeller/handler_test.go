package modeller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pricing-modeller/core/drafts"
	"pricing-modeller/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scenarioDelta = `{"features":[{"id":"f1","name":"API calls","type":"single_use"}],` +
	`"products":[{"id":"p1","name":"Pro","items":[{"feature_id":"f1","included_usage":1000,"interval":"month"}]}]}`

func setupTestApp(t *testing.T) (*fiber.App, *drafts.MemoryStore) {
	t.Helper()
	store := drafts.NewMemoryStore()
	registry := reconcile.NewRegistry(store, 0, zap.NewNop())
	app := fiber.New()
	NewHandler(NewService(registry, zap.NewNop(), 0)).RegisterRoutes(app)
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, "POST", "/sessions", "")
	require.Equal(t, fiber.StatusCreated, status)
	id, ok := body["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestSessionLifecycle(t *testing.T) {
	app, store := setupTestApp(t)
	id := createSession(t, app)
	base := "/sessions/" + id

	status, body := do(t, app, "POST", base+"/deltas", scenarioDelta)
	assert.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, true, body["applied"])

	status, body = do(t, app, "POST", base+"/deltas", `{"features":[{"id":"f1","na`)
	assert.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, false, body["applied"])

	status, body = do(t, app, "GET", base+"/model", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["streaming"])
	model := body["pricing_model"].(map[string]any)
	features := model["features"].([]any)
	require.Len(t, features, 1)
	assert.Equal(t, "API calls", features[0].(map[string]any)["name"])

	status, _ = do(t, app, "PUT", base+"/model", scenarioDelta)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = do(t, app, "POST", base+"/finalize", scenarioDelta)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["streaming"])

	saved, found, err := store.Load(t.Context(), id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, saved.Products, 1)

	status, body = do(t, app, "GET", base+"/table", "")
	require.Equal(t, fiber.StatusOK, status)
	cards := body["cards"].([]any)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "Pro", card["name"])
	assert.Equal(t, "Free", card["price"].(map[string]any)["primary_text"])

	status, _ = do(t, app, "POST", base+"/reset", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	_, body = do(t, app, "GET", base+"/model", "")
	assert.Empty(t, body["pricing_model"].(map[string]any)["products"])

	status, _ = do(t, app, "DELETE", base, "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = do(t, app, "GET", base+"/model", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandleEdit(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createSession(t, app)

	tests := []struct {
		name    string
		body    string
		status  int
		invalid bool
	}{
		{name: "Valid model", body: scenarioDelta, status: fiber.StatusOK},
		{name: "Broken JSON", body: `{"features":`, status: fiber.StatusUnprocessableEntity, invalid: true},
		{name: "Missing products", body: `{"features":[]}`, status: fiber.StatusUnprocessableEntity, invalid: true},
		{
			name:    "Invalid feature type",
			body:    `{"features":[{"id":"f1","name":"X","type":"weird"}],"products":[]}`,
			status:  fiber.StatusUnprocessableEntity,
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, "PUT", "/sessions/"+id+"/model", tt.body)
			assert.Equal(t, tt.status, status)
			if tt.invalid {
				assert.Equal(t, true, body["invalid_json"])
			}
		})
	}

	// Rejected edits leave the last valid model in place.
	_, body := do(t, app, "GET", "/sessions/"+id+"/model", "")
	products := body["pricing_model"].(map[string]any)["products"].([]any)
	assert.Len(t, products, 1)
}

func TestHandleStream(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createSession(t, app)

	stream := strings.Join([]string{
		`{"type":"delta","object":{"features":[{"id":"f1","name":"API"}]}}`,
		`{"type":"delta","object":` + scenarioDelta + `}`,
		`not json`,
		`{"type":"done","object":` + scenarioDelta + `}`,
	}, "\n")

	status, body := do(t, app, "POST", "/sessions/"+id+"/stream", stream)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["finalized"])
	assert.Equal(t, float64(1), body["deltas"])
	// The features-only delta and the malformed line.
	assert.Equal(t, float64(2), body["ignored"])

	status, body = do(t, app, "POST", "/sessions/"+id+"/stream", `{"type":"done","object":"nope"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, true, body["invalid_json"])
}

func TestHandleAbort(t *testing.T) {
	app, store := setupTestApp(t)
	id := createSession(t, app)
	base := "/sessions/" + id

	status, _ := do(t, app, "POST", base+"/deltas", scenarioDelta)
	require.Equal(t, fiber.StatusAccepted, status)
	status, _ = do(t, app, "PUT", base+"/model", scenarioDelta)
	require.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "POST", base+"/abort", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body := do(t, app, "GET", base+"/model", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["streaming"])
	assert.Len(t, body["pricing_model"].(map[string]any)["products"], 1)

	saved, found, err := store.Load(t.Context(), id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, saved.Products, 1)

	// Aborting with no stream open changes nothing.
	status, _ = do(t, app, "POST", base+"/abort", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "PUT", base+"/model", `{"features":[],"products":[]}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUnknownSession(t *testing.T) {
	app, _ := setupTestApp(t)

	routes := []struct{ method, path string }{
		{"GET", "/sessions/missing/model"},
		{"POST", "/sessions/missing/deltas"},
		{"GET", "/sessions/missing/table"},
		{"POST", "/sessions/missing/reset"},
		{"POST", "/sessions/missing/abort"},
		{"DELETE", "/sessions/missing"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			status, body := do(t, app, r.method, r.path, "{}")
			assert.Equal(t, fiber.StatusNotFound, status)
			assert.Equal(t, reconcile.ErrSessionNotFound.Error(), body["error"])
		})
	}
}

func TestLoader(t *testing.T) {
	registry := reconcile.NewRegistry(drafts.NewMemoryStore(), 0, zap.NewNop())
	feature := NewFeature(registry, zap.NewNop(), 0)

	assert.Equal(t, "modeller", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
