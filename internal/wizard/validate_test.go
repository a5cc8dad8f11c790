package wizard_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

func fullDraft() wizard.Draft {
	return wizard.Draft{
		PackageID:      "pkg-1",
		Title:          "Senior Gardener",
		Description:    "We are looking for a senior gardener.",
		Location:       "Utrecht",
		EmploymentType: "fulltime",
		ContactName:    "Anna de Vries",
		ContactEmail:   "anna@groenbedrijf.nl",
	}
}

// ── e-mail rule ────────────────────────────────────────────────────────────

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.nl",
		"first.last@sub.domain.co",
		"x+tag@company.io",
	}
	for _, s := range valid {
		if !wizard.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) should be true", s)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"no@tld",
		"short@tld.x", // TLD must be at least 2 chars
		"spaces in@local.nl",
		"double@@at.nl",
	}
	for _, s := range invalid {
		if wizard.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) should be false", s)
		}
	}
}

// ── input type ─────────────────────────────────────────────────────────────

func TestParseInputType(t *testing.T) {
	cases := []struct {
		in   string
		want wizard.InputType
		ok   bool
	}{
		{"self_service", wizard.InputSelfService, true},
		{"we_do_it_for_you", wizard.InputWeDoItForYou, true},
		{"", wizard.InputSelfService, true},
		{"full_service", "", false},
	}
	for _, c := range cases {
		got, ok := wizard.ParseInputType(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseInputType(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

// ── step rule sets ─────────────────────────────────────────────────────────

func TestValidateStep_PackageRequired(t *testing.T) {
	errs := wizard.ValidateStep(wizard.StepPackage, wizard.InputSelfService, wizard.Draft{})
	if _, ok := errs["package"]; !ok {
		t.Error("empty draft should fail the package step")
	}

	errs = wizard.ValidateStep(wizard.StepPackage, wizard.InputSelfService, wizard.Draft{PackageID: "pkg-1"})
	if len(errs) != 0 {
		t.Errorf("package selected, expected no errors, got %v", errs)
	}
}

func TestValidateStep_SelfServiceContentRules(t *testing.T) {
	d := fullDraft()
	if errs := wizard.ValidateStep(wizard.StepContent, wizard.InputSelfService, d); len(errs) != 0 {
		t.Fatalf("full draft should validate, got %v", errs)
	}

	d.Description = ""
	d.Location = "  "
	errs := wizard.ValidateStep(wizard.StepContent, wizard.InputSelfService, d)
	if _, ok := errs["description"]; !ok {
		t.Error("missing description should be reported")
	}
	if _, ok := errs["location"]; !ok {
		t.Error("whitespace-only location should be reported")
	}
}

func TestValidateStep_WeDoItForYouIsCheaper(t *testing.T) {
	d := wizard.Draft{Title: "Gardener", ContactEmail: "a@b.nl"}
	if errs := wizard.ValidateStep(wizard.StepContent, wizard.InputWeDoItForYou, d); len(errs) != 0 {
		t.Errorf("we_do_it_for_you needs only title+email, got %v", errs)
	}
	if errs := wizard.ValidateStep(wizard.StepContent, wizard.InputSelfService, d); len(errs) == 0 {
		t.Error("the same draft should not pass the self-service rule set")
	}
}

func TestValidateStep_EmailFormatChecked(t *testing.T) {
	d := fullDraft()
	d.ContactEmail = "not-an-email"
	errs := wizard.ValidateStep(wizard.StepContent, wizard.InputSelfService, d)
	if errs["contact_email"] == "" {
		t.Error("malformed contact_email should be reported")
	}
}

func TestValidateStep_SalaryRange(t *testing.T) {
	d := fullDraft()
	d.SalaryMin = 4000
	d.SalaryMax = 3000
	errs := wizard.ValidateStep(wizard.StepContent, wizard.InputSelfService, d)
	if errs["salary_max"] == "" {
		t.Error("inverted salary range should be reported")
	}
}

func TestValidateStep_PreviewHasNoRules(t *testing.T) {
	if errs := wizard.ValidateStep(wizard.StepPreview, wizard.InputSelfService, wizard.Draft{}); len(errs) != 0 {
		t.Errorf("preview step should never block, got %v", errs)
	}
}

func TestErrors_ClearPrunesSingleField(t *testing.T) {
	errs := wizard.Errors{"title": "required", "location": "required"}
	errs.Clear("title")
	if _, ok := errs["title"]; ok {
		t.Error("title should have been pruned")
	}
	if _, ok := errs["location"]; !ok {
		t.Error("location must survive pruning of another field")
	}
}

// ── Completed ──────────────────────────────────────────────────────────────

func TestCompleted_ChainsSteps(t *testing.T) {
	done := wizard.Completed(wizard.InputSelfService, wizard.Draft{}, false)
	if len(done) != 0 {
		t.Errorf("empty draft should complete nothing, got %v", done)
	}

	done = wizard.Completed(wizard.InputSelfService, fullDraft(), false)
	if !done[wizard.StepPackage] || !done[wizard.StepContent] || !done[wizard.StepPreview] {
		t.Errorf("full draft should complete steps 1-3, got %v", done)
	}
	if done[wizard.StepSubmit] {
		t.Error("submit only completes after an actual submission")
	}

	done = wizard.Completed(wizard.InputSelfService, fullDraft(), true)
	if !done[wizard.StepSubmit] {
		t.Error("submitted vacancy should have step 4 completed")
	}
}

func TestCompleted_ContentWithoutPackageDoesNotCount(t *testing.T) {
	d := fullDraft()
	d.PackageID = ""
	done := wizard.Completed(wizard.InputSelfService, d, false)
	if done[wizard.StepContent] {
		t.Error("content cannot be complete while the package step is not")
	}
}
