package wizard

import "math"

// PricedItem is the slice of a product the cost arithmetic needs.
type PricedItem struct {
	ID      string
	Credits int
	Price   int64
}

// Package is a posting package; upsells it already includes do not count
// towards the total again.
type Package struct {
	PricedItem
	IncludedUpsells []string
}

// CostBreakdown is what the checkout sidebar shows.
type CostBreakdown struct {
	TotalCredits   int   `json:"total_credits"`
	TotalPrice     int64 `json:"total_price"`
	Available      int   `json:"available_credits"`
	Shortage       int   `json:"shortage"`
	ShortfallPrice int64 `json:"shortfall_price"`
}

// Cost computes the credit total for a package plus selected upsells and the
// price of any shortage against the available balance. Upsells already
// included by the package are free; duplicate selections count once. The
// shortfall price is the proportional share of the total price attributable
// to the missing credits, rounded to the nearest unit.
func Cost(pkg Package, upsells []PricedItem, available int) CostBreakdown {
	included := map[string]bool{}
	for _, id := range pkg.IncludedUpsells {
		included[id] = true
	}

	total := pkg.Credits
	price := pkg.Price
	seen := map[string]bool{}
	for _, u := range upsells {
		if included[u.ID] || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		total += u.Credits
		price += u.Price
	}

	shortage := total - available
	if shortage < 0 {
		shortage = 0
	}

	var shortfall int64
	if shortage > 0 && total > 0 {
		shortfall = int64(math.Round(float64(shortage) / float64(total) * float64(price)))
	}

	return CostBreakdown{
		TotalCredits:   total,
		TotalPrice:     price,
		Available:      available,
		Shortage:       shortage,
		ShortfallPrice: shortfall,
	}
}
