package wizard_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

// ── ParseStep ──────────────────────────────────────────────────────────────

func TestParseStep_ValidRange(t *testing.T) {
	for n := 1; n <= 4; n++ {
		got, err := wizard.ParseStep(n)
		if err != nil {
			t.Errorf("ParseStep(%d) returned unexpected error: %v", n, err)
		}
		if int(got) != n {
			t.Errorf("ParseStep(%d) = %d", n, got)
		}
	}
}

func TestParseStep_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 5, 99} {
		if _, err := wizard.ParseStep(n); err == nil {
			t.Errorf("ParseStep(%d) expected error, got nil", n)
		}
	}
}

// ── MinStep / Previous ─────────────────────────────────────────────────────

func TestMinStep(t *testing.T) {
	if wizard.MinStep(false) != wizard.StepPackage {
		t.Error("new vacancy should start at the package step")
	}
	if wizard.MinStep(true) != wizard.StepContent {
		t.Error("existing vacancy must never go below the content step")
	}
}

func TestPrevious_BoundedAtMinStep(t *testing.T) {
	cases := []struct {
		current    wizard.Step
		isExisting bool
		want       wizard.Step
	}{
		{wizard.StepSubmit, false, wizard.StepPreview},
		{wizard.StepContent, false, wizard.StepPackage},
		{wizard.StepPackage, false, wizard.StepPackage},
		{wizard.StepPreview, true, wizard.StepContent},
		{wizard.StepContent, true, wizard.StepContent}, // edit mode floor
	}
	for _, c := range cases {
		if got := wizard.Previous(c.current, c.isExisting); got != c.want {
			t.Errorf("Previous(%d, existing=%v) = %d, want %d", c.current, c.isExisting, got, c.want)
		}
	}
}

func TestNext_BoundedAtLastStep(t *testing.T) {
	if wizard.Next(wizard.StepSubmit) != wizard.StepSubmit {
		t.Error("Next(last step) should stay on the last step")
	}
	if wizard.Next(wizard.StepPackage) != wizard.StepContent {
		t.Error("Next(1) should be 2")
	}
}

func TestBump_NeverMovesBackward(t *testing.T) {
	if got := wizard.Bump(wizard.StepPreview, wizard.StepContent); got != wizard.StepPreview {
		t.Errorf("Bump(3, 2) = %d, want 3", got)
	}
	if got := wizard.Bump(wizard.StepContent, wizard.StepPreview); got != wizard.StepPreview {
		t.Errorf("Bump(2, 3) = %d, want 3", got)
	}
}

// ── CanJump ────────────────────────────────────────────────────────────────

func TestCanJump_RejectedWhilePrerequisiteIncomplete(t *testing.T) {
	completed := map[wizard.Step]bool{wizard.StepPackage: true}
	if wizard.CanJump(wizard.StepContent, completed, wizard.StepPreview, false) {
		t.Error("jump to the preview step should be rejected while the content step is incomplete")
	}
	if wizard.CanJump(wizard.StepContent, completed, wizard.StepPreview+1, false) {
		t.Error("jump two steps ahead should be rejected")
	}

	completed[wizard.StepContent] = true
	if !wizard.CanJump(wizard.StepContent, completed, wizard.StepPreview, false) {
		t.Error("successor of a completed step should be allowed")
	}
	if wizard.CanJump(wizard.StepContent, completed, wizard.StepSubmit, false) {
		t.Error("jump past the successor should still be rejected")
	}
}

func TestCanJump_CompletedStepsAlwaysReachable(t *testing.T) {
	completed := map[wizard.Step]bool{
		wizard.StepPackage: true,
		wizard.StepContent: true,
	}
	if !wizard.CanJump(wizard.StepPreview, completed, wizard.StepPackage, false) {
		t.Error("jump back to a completed step should be allowed")
	}
}

func TestCanJump_EditModeNeverReachesStepOne(t *testing.T) {
	completed := map[wizard.Step]bool{
		wizard.StepPackage: true,
		wizard.StepContent: true,
		wizard.StepPreview: true,
	}
	if wizard.CanJump(wizard.StepPreview, completed, wizard.StepPackage, true) {
		t.Error("edit-mode wizard must not jump to the package step")
	}
}

func TestCanJump_SelfIsNoop(t *testing.T) {
	if wizard.CanJump(wizard.StepContent, map[wizard.Step]bool{}, wizard.StepContent, false) {
		t.Error("jumping to the current step should be a no-op")
	}
}

// ── Clamp ──────────────────────────────────────────────────────────────────

func TestClamp_HintWithinReach(t *testing.T) {
	completed := map[wizard.Step]bool{wizard.StepPackage: true}
	cases := []struct {
		hint wizard.Step
		want wizard.Step
	}{
		{wizard.StepPackage, wizard.StepPackage},
		{wizard.StepContent, wizard.StepContent},
		{wizard.StepPreview, wizard.StepContent}, // beyond first incomplete step
		{wizard.StepSubmit, wizard.StepContent},
	}
	for _, c := range cases {
		if got := wizard.Clamp(c.hint, completed, false); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.hint, got, c.want)
		}
	}
}

func TestClamp_SubmittedVacancyForcedPastPackageStep(t *testing.T) {
	completed := map[wizard.Step]bool{
		wizard.StepPackage: true,
		wizard.StepContent: true,
		wizard.StepPreview: true,
		wizard.StepSubmit:  true,
	}
	if got := wizard.Clamp(wizard.StepPackage, completed, true); got != wizard.StepContent {
		t.Errorf("Clamp(1, submitted) = %d, want %d", got, wizard.StepContent)
	}
}

// ── StepStates (step indicator) ────────────────────────────────────────────

func TestStepStates_PhasesAndClickability(t *testing.T) {
	completed := map[wizard.Step]bool{wizard.StepPackage: true}
	states := wizard.StepStates(wizard.StepContent, completed, false)

	if len(states) != 4 {
		t.Fatalf("expected 4 indicator entries, got %d", len(states))
	}
	if states[0].Phase != wizard.PhaseDone || !states[0].Clickable {
		t.Errorf("step 1 should be done and clickable, got %+v", states[0])
	}
	if states[1].Phase != wizard.PhaseActive {
		t.Errorf("step 2 should be active, got %+v", states[1])
	}
	if states[2].Phase != wizard.PhaseUpcoming || states[2].Clickable {
		t.Errorf("step 3 should be upcoming and unclickable while step 2 is incomplete, got %+v", states[2])
	}
	if states[3].Clickable {
		t.Errorf("step 4 should not be clickable yet, got %+v", states[3])
	}

	completed[wizard.StepContent] = true
	states = wizard.StepStates(wizard.StepContent, completed, false)
	if !states[2].Clickable {
		t.Errorf("step 3 should become clickable once step 2 is complete, got %+v", states[2])
	}
	if states[3].Clickable {
		t.Errorf("step 4 should still not be clickable, got %+v", states[3])
	}
}

func TestStepStates_EditModeOmitsStepOne(t *testing.T) {
	completed := map[wizard.Step]bool{
		wizard.StepPackage: true,
		wizard.StepContent: true,
	}
	states := wizard.StepStates(wizard.StepContent, completed, true)
	if len(states) != 3 {
		t.Fatalf("edit mode should render 3 steps, got %d", len(states))
	}
	for _, s := range states {
		if s.Step == wizard.StepPackage {
			t.Error("edit mode must not render the package step at all")
		}
	}
}
