// Package list contains the pure core of the gateway: item normalization,
// intent classification, prompt rendering and model-output extraction.
package list

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shoppiq/list-gateway/internal/model"
)

const (
	// NameSentinel replaces a missing or empty item name.
	NameSentinel = "Unbekannt"

	// DefaultUnit is assumed when the payload carries no unit.
	DefaultUnit = "Stück"

	// placeholderID is the template token some clients and model replies
	// leave in the uuid field. It is never accepted as an identity.
	placeholderID = "unique-id"
)

// Normalize converts a loosely typed item payload into the canonical
// ShoppingItem. It is total: any mapping, including an empty one, yields a
// valid item with identity, name and quantity >= 1. Unknown keys are
// discarded.
func Normalize(raw map[string]any) model.ShoppingItem {
	item := model.ShoppingItem{
		UUID:     uuid.New().String(),
		Name:     NameSentinel,
		Quantity: 1,
		Unit:     DefaultUnit,
	}

	if id := stringValue(raw["uuid"]); id != "" && id != placeholderID {
		item.UUID = id
	}
	if name := strings.TrimSpace(stringValue(raw["name"])); name != "" {
		item.Name = name
	}
	if q, ok := intValue(raw["quantity"]); ok && q > 1 {
		item.Quantity = q
	}
	if unit := stringValue(raw["unit"]); unit != "" {
		item.Unit = unit
	}
	item.Note = stringValue(raw["note"])
	if category := stringValue(raw["category"]); category != "" {
		item.Category = &category
	}
	if checked, ok := raw["isChecked"].(bool); ok {
		item.IsChecked = checked
	}
	// Both spellings occur in the wild: the chat payloads use the German
	// key, the generation schema the English one.
	market := stringValue(raw["supermarkt"])
	if market == "" {
		market = stringValue(raw["supermarket"])
	}
	if market != "" {
		item.Supermarket = &market
	}
	if price, ok := floatValue(raw["estimated_price"]); ok && price >= 0 {
		item.EstimatedPrice = &price
	}

	return item
}

// NormalizeAll normalizes a slice of raw payloads, preserving order.
func NormalizeAll(raws []map[string]any) []model.ShoppingItem {
	items := make([]model.ShoppingItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, Normalize(raw))
	}
	return items
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// intValue accepts the numeric shapes JSON decoding and clients produce.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
