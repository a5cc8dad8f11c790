package wizard_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

// Walks the happy path of a new vacancy through the pure core: select a
// package, advance, fill the form, advance to preview and submit with
// sufficient credits.
func TestNewVacancyHappyPath(t *testing.T) {
	inputType := wizard.InputSelfService
	d := wizard.Draft{}
	step := wizard.FirstStep

	// Step 1 without a package: blocked.
	if errs := wizard.ValidateStep(step, inputType, d); len(errs) == 0 {
		t.Fatal("advancing without a package should be blocked")
	}

	d.PackageID = "pkg-100"
	if errs := wizard.ValidateStep(step, inputType, d); len(errs) != 0 {
		t.Fatalf("package selected, expected to advance, got %v", errs)
	}
	step = wizard.Next(step)
	if step != wizard.StepContent {
		t.Fatalf("expected content step, got %d", step)
	}

	// Step 2 with an incomplete form: blocked, and a jump to preview is
	// rejected too.
	done := wizard.Completed(inputType, d, false)
	if wizard.CanJump(step, done, wizard.StepPreview, false) {
		t.Fatal("jump to preview should be rejected while the content step is incomplete")
	}
	if wizard.CanJump(step, done, wizard.StepPreview+1, false) {
		t.Fatal("jump past the incomplete content step should be rejected")
	}

	d.Title = "Senior Gardener"
	d.Description = "Tend the gardens of Utrecht."
	d.Location = "Utrecht"
	d.EmploymentType = "fulltime"
	d.ContactName = "Anna de Vries"
	d.ContactEmail = "anna@groenbedrijf.nl"

	if errs := wizard.ValidateStep(step, inputType, d); len(errs) != 0 {
		t.Fatalf("complete form should validate, got %v", errs)
	}
	done = wizard.Completed(inputType, d, false)
	if !wizard.CanJump(step, done, wizard.StepPreview, false) {
		t.Fatal("jump to preview should be accepted once the content fields are filled")
	}
	step = wizard.Next(step) // preview
	step = wizard.Next(step) // submit
	if step != wizard.StepSubmit {
		t.Fatalf("expected submit step, got %d", step)
	}

	// Checkout with sufficient credits: no shortage, nothing to invoice.
	pkg := wizard.Package{PricedItem: wizard.PricedItem{ID: "pkg-100", Credits: 100, Price: 50}}
	cost := wizard.Cost(pkg, nil, 100)
	if cost.Shortage != 0 {
		t.Fatalf("100 credits available for a 100-credit package, got shortage %d", cost.Shortage)
	}
}
