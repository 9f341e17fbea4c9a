package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyPayload(t *testing.T) {
	item := Normalize(map[string]any{})

	assert.NotEmpty(t, item.UUID)
	assert.Equal(t, NameSentinel, item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, DefaultUnit, item.Unit)
	assert.Empty(t, item.Note)
	assert.Nil(t, item.Category)
	assert.False(t, item.IsChecked)
	assert.Nil(t, item.Supermarket)
	assert.Nil(t, item.EstimatedPrice)
}

func TestNormalizeFullPayload(t *testing.T) {
	item := Normalize(map[string]any{
		"uuid":            "abc-123",
		"name":            "Milch",
		"quantity":        float64(3),
		"unit":            "Liter",
		"note":            "fettarm",
		"category":        "Milchprodukte",
		"isChecked":       true,
		"supermarkt":      "REWE",
		"estimated_price": 1.19,
	})

	assert.Equal(t, "abc-123", item.UUID)
	assert.Equal(t, "Milch", item.Name)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "Liter", item.Unit)
	assert.Equal(t, "fettarm", item.Note)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Milchprodukte", *item.Category)
	assert.True(t, item.IsChecked)
	require.NotNil(t, item.Supermarket)
	assert.Equal(t, "REWE", *item.Supermarket)
	require.NotNil(t, item.EstimatedPrice)
	assert.Equal(t, 1.19, *item.EstimatedPrice)
}

func TestNormalizePlaceholderIdentityIsRegenerated(t *testing.T) {
	item := Normalize(map[string]any{"uuid": "unique-id", "name": "Brot"})

	assert.NotEqual(t, "unique-id", item.UUID)
	assert.NotEmpty(t, item.UUID)
}

func TestNormalizeQuantityClamping(t *testing.T) {
	tests := []struct {
		name     string
		quantity any
		want     int
	}{
		{"missing", nil, 1},
		{"zero", float64(0), 1},
		{"negative", float64(-4), 1},
		{"positive", float64(7), 7},
		{"int", 2, 2},
		{"numeric string", "5", 5},
		{"garbage string", "viele", 1},
		{"wrong type", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"name": "Eier"}
			if tt.quantity != nil {
				raw["quantity"] = tt.quantity
			}
			assert.Equal(t, tt.want, Normalize(raw).Quantity)
		})
	}
}

func TestNormalizeAcceptsBothSupermarketSpellings(t *testing.T) {
	german := Normalize(map[string]any{"name": "Käse", "supermarkt": "EDEKA"})
	english := Normalize(map[string]any{"name": "Käse", "supermarket": "LIDL"})

	require.NotNil(t, german.Supermarket)
	assert.Equal(t, "EDEKA", *german.Supermarket)
	require.NotNil(t, english.Supermarket)
	assert.Equal(t, "LIDL", *english.Supermarket)
}

func TestNormalizeDropsNegativePriceAndUnknownKeys(t *testing.T) {
	item := Normalize(map[string]any{
		"name":            "Saft",
		"estimated_price": -2.5,
		"color":           "orange",
		"priority":        9,
	})

	assert.Nil(t, item.EstimatedPrice)
	assert.Equal(t, "Saft", item.Name)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first := Normalize(map[string]any{
		"name":            "Butter",
		"quantity":        float64(2),
		"supermarkt":      "ALDI",
		"estimated_price": 2.49,
	})

	second := Normalize(map[string]any{
		"uuid":            first.UUID,
		"name":            first.Name,
		"quantity":        first.Quantity,
		"unit":            first.Unit,
		"note":            first.Note,
		"isChecked":       first.IsChecked,
		"supermarkt":      *first.Supermarket,
		"estimated_price": *first.EstimatedPrice,
	})

	assert.Equal(t, first, second)
}
