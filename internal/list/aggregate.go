package list

import (
	"math"
	"sort"

	"github.com/shoppiq/list-gateway/internal/model"
)

// Aggregates recomputes the derived fields of a list from its items:
// total estimated price (price x quantity over priced items, rounded to
// cents, nil when no item carries a price) and the distinct supermarket
// names, sorted for stable output.
func Aggregates(items []model.ShoppingItem) (*float64, []string) {
	var (
		total    float64
		hasPrice bool
		markets  = map[string]struct{}{}
	)

	for _, item := range items {
		if item.EstimatedPrice != nil {
			total += *item.EstimatedPrice * float64(item.Quantity)
			hasPrice = true
		}
		if item.Supermarket != nil && *item.Supermarket != "" {
			markets[*item.Supermarket] = struct{}{}
		}
	}

	names := make([]string, 0, len(markets))
	for name := range markets {
		names = append(names, name)
	}
	sort.Strings(names)

	if !hasPrice {
		return nil, names
	}
	total = math.Round(total*100) / 100
	return &total, names
}
