package subscription

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(Options{PublishableKey: "pk_live_9"})(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `data-feature="subscription"`)
	assert.Contains(t, html, `data-interval="monthly"`)
	assert.Contains(t, html, `data-interval="yearly"`)
	assert.Contains(t, html, `value="patron-yearly"> Patron $200/yr`)
	assert.Contains(t, html, `data-publishable-key="pk_live_9"`)
	assert.Less(t, strings.Index(html, "monthly"), strings.Index(html, "yearly"))
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		plans []Plan
	}{
		{"empty", []Plan{}},
		{"missing id", []Plan{{Interval: Monthly}}},
		{"duplicate id", []Plan{{ID: "a", Interval: Monthly}, {ID: "a", Interval: Yearly}}},
		{"bad interval", []Plan{{ID: "a", Interval: "weekly"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{Plans: tt.plans})(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$5", FormatPrice(500))
	assert.Equal(t, "$5.50", FormatPrice(550))
	assert.Equal(t, "$0.05", FormatPrice(5))
}
