package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/projection"

	"github.com/charmbracelet/lipgloss"
)

var (
	brandPrimary = lipgloss.Color("#7C3AED")
	brandError   = lipgloss.Color("#F43F5E")
	textMuted    = lipgloss.Color("#6B7280")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandPrimary).
			Padding(0, 1).
			Width(30)

	titleStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(brandError).
			Bold(true)
)

// readModelFile decodes a model file without validating it; "-" reads stdin.
func readModelFile(path string) (pricing.PricingModel, error) {
	raw, err := readInput(path)
	if err != nil {
		return pricing.PricingModel{}, err
	}
	m, err := pricing.Decode(raw)
	if err != nil {
		return pricing.PricingModel{}, &pricing.ParseError{Err: err}
	}
	return m, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderCard draws one pricing card.
func renderCard(c projection.Card) string {
	var b strings.Builder

	name := c.Name
	if c.IsAddOn {
		name += dimStyle.Render(" (add-on)")
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")

	b.WriteString(priceStyle.Render(c.Price.PrimaryText))
	if s := strings.TrimSpace(c.Price.SecondaryText); s != "" {
		b.WriteString(" " + dimStyle.Render(s))
	}
	if c.PriceAnnual != nil {
		b.WriteString("\n" + dimStyle.Render("or "+strings.TrimSpace(c.PriceAnnual.PrimaryText+" "+c.PriceAnnual.SecondaryText)))
	}

	for _, line := range c.Items {
		b.WriteString("\n• " + line.PrimaryText)
		if line.SecondaryText != "" {
			b.WriteString(" " + dimStyle.Render(line.SecondaryText))
		}
	}
	return cardStyle.Render(b.String())
}

// renderTable draws the cards side by side, followed by render failures and
// credit systems.
func renderTable(t projection.Table) string {
	var sections []string

	if len(t.Cards) == 0 {
		sections = append(sections, dimStyle.Render("No products."))
	} else {
		cards := make([]string, len(t.Cards))
		for i, c := range t.Cards {
			cards[i] = renderCard(c)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	for _, f := range t.Failures {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Cannot render %s: %s", f.Name, f.Error)))
	}

	for _, cs := range t.Credits {
		lines := []string{titleStyle.Render(cs.Name)}
		for _, e := range cs.Entries {
			lines = append(lines, fmt.Sprintf("  %s: %s", e.Feature, e.Text()))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
