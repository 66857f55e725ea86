package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelJSON = `{
  "features": [{"id": "api", "name": "API call", "type": "single_use", "display": {"singular": "API call", "plural": "API calls"}}],
  "products": [
    {"id": "pro", "name": "Pro", "items": [{"price": 29, "interval": "month"}, {"feature_id": "api", "included_usage": 1000, "interval": "month"}]},
    {"id": "free", "name": "Free", "items": [{"feature_id": "api", "included_usage": 100, "interval": "month"}]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestTableCommand(t *testing.T) {
	path := writeFile(t, "model.json", modelJSON)

	out, err := run(t, "table", "--json", path)
	require.NoError(t, err)

	var table projection.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	require.Len(t, table.Cards, 2)
	assert.Equal(t, "Free", table.Cards[0].Name)
	assert.Equal(t, "Pro", table.Cards[1].Name)
	assert.Equal(t, "$29", table.Cards[1].Price.PrimaryText)
}

func TestTableCommand_InvalidFile(t *testing.T) {
	path := writeFile(t, "broken.json", `{"features":`)

	_, err := run(t, "table", "--json=false", path)
	var perr *pricing.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestReplayCommand(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"delta","object":{"features":[{"id":"api","name":"API","type":"single_use"}],"products":[]}}`,
		`{"type":"delta","object":{"features":[],"products":[{"id":"pro","name":"Pro","items":[{"price":29,"interval":"month"}]}]}}`,
	}, "\n")
	path := writeFile(t, "stream.ndjson", stream)

	out, err := run(t, "replay", "--json", path)
	require.NoError(t, err)

	var body struct {
		Result struct {
			Deltas    int  `json:"deltas"`
			Finalized bool `json:"finalized"`
			Aborted   bool `json:"aborted"`
		} `json:"result"`
		PricingModel pricing.PricingModel `json:"pricing_model"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 2, body.Result.Deltas)
	assert.False(t, body.Result.Finalized)
	assert.True(t, body.Result.Aborted)
	assert.Len(t, body.PricingModel.Features, 1)
	assert.Len(t, body.PricingModel.Products, 1)
}

func TestIntegrityCommand(t *testing.T) {
	clean := writeFile(t, "clean.json", modelJSON)
	out, err := run(t, "integrity", "--json=false", clean)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")

	broken := writeFile(t, "broken.json", `{"features":[],"products":[{"id":"p","name":"P","items":[{"feature_id":"ghost"}]}]}`)
	out, err = run(t, "integrity", "--json=false", broken)
	assert.Error(t, err)
	assert.Contains(t, out, "item_reference")
}

func TestRenderTable(t *testing.T) {
	table := projection.Table{
		Cards: []projection.Card{{
			ID:          "pro",
			Name:        "Pro Plan",
			Price:       projection.Price{PrimaryText: "$29", SecondaryText: "per month"},
			PriceAnnual: &projection.Price{PrimaryText: "$290", SecondaryText: "per year"},
			Items:       []projection.DisplayLine{{PrimaryText: "1,000 API calls", SecondaryText: "per month"}},
		}},
		Failures: []projection.Failure{{ProductID: "bad", Name: "Bad", Error: "feature not found"}},
		Credits: []projection.CreditSystem{{
			ID: "credits", Name: "Credits",
			Entries: []projection.CreditCost{{Feature: "API calls", Cost: 2, Unit: "credits"}},
		}},
	}

	out := renderTable(table)
	for _, want := range []string{"Pro Plan", "$29", "$290", "1,000 API calls", "Cannot render Bad", "API calls: 2 credits"} {
		assert.Contains(t, out, want)
	}

	assert.Contains(t, renderTable(projection.Table{}), "No products.")
}
