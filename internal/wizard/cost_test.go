package wizard_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

func TestCost_ShortfallRounding(t *testing.T) {
	// package 100 credits / 50, upsell 20 credits / 10, 80 credits available:
	// total 120 credits / 60, shortage 40, price round(40/120*60) = 20.
	pkg := wizard.Package{PricedItem: wizard.PricedItem{ID: "pkg", Credits: 100, Price: 50}}
	upsells := []wizard.PricedItem{{ID: "up", Credits: 20, Price: 10}}

	got := wizard.Cost(pkg, upsells, 80)

	if got.TotalCredits != 120 {
		t.Errorf("TotalCredits = %d, want 120", got.TotalCredits)
	}
	if got.TotalPrice != 60 {
		t.Errorf("TotalPrice = %d, want 60", got.TotalPrice)
	}
	if got.Shortage != 40 {
		t.Errorf("Shortage = %d, want 40", got.Shortage)
	}
	if got.ShortfallPrice != 20 {
		t.Errorf("ShortfallPrice = %d, want 20", got.ShortfallPrice)
	}
}

func TestCost_SufficientBalanceHasNoShortfall(t *testing.T) {
	pkg := wizard.Package{PricedItem: wizard.PricedItem{ID: "pkg", Credits: 100, Price: 50}}
	got := wizard.Cost(pkg, nil, 150)
	if got.Shortage != 0 || got.ShortfallPrice != 0 {
		t.Errorf("no shortage expected, got %+v", got)
	}
}

func TestCost_IncludedUpsellsAreFree(t *testing.T) {
	pkg := wizard.Package{
		PricedItem:      wizard.PricedItem{ID: "pkg", Credits: 100, Price: 50},
		IncludedUpsells: []string{"social"},
	}
	upsells := []wizard.PricedItem{
		{ID: "social", Credits: 20, Price: 10}, // already in the package
		{ID: "top", Credits: 30, Price: 15},
	}
	got := wizard.Cost(pkg, upsells, 0)
	if got.TotalCredits != 130 {
		t.Errorf("TotalCredits = %d, want 130 (included upsell must not count)", got.TotalCredits)
	}
	if got.TotalPrice != 65 {
		t.Errorf("TotalPrice = %d, want 65", got.TotalPrice)
	}
}

func TestCost_DuplicateSelectionCountsOnce(t *testing.T) {
	pkg := wizard.Package{PricedItem: wizard.PricedItem{ID: "pkg", Credits: 100, Price: 50}}
	upsells := []wizard.PricedItem{
		{ID: "top", Credits: 30, Price: 15},
		{ID: "top", Credits: 30, Price: 15},
	}
	got := wizard.Cost(pkg, upsells, 0)
	if got.TotalCredits != 130 {
		t.Errorf("TotalCredits = %d, want 130 (set semantics)", got.TotalCredits)
	}
}

func TestCost_RoundsToNearestUnit(t *testing.T) {
	// shortage 1 of 3 credits over price 10 → round(3.33..) = 3
	pkg := wizard.Package{PricedItem: wizard.PricedItem{ID: "pkg", Credits: 3, Price: 10}}
	got := wizard.Cost(pkg, nil, 2)
	if got.ShortfallPrice != 3 {
		t.Errorf("ShortfallPrice = %d, want 3", got.ShortfallPrice)
	}

	// shortage 2 of 3 → round(6.66..) = 7
	got = wizard.Cost(pkg, nil, 1)
	if got.ShortfallPrice != 7 {
		t.Errorf("ShortfallPrice = %d, want 7", got.ShortfallPrice)
	}
}
