package wizard_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

func TestSnapshot_Deterministic(t *testing.T) {
	d := fullDraft()
	if wizard.Snapshot(d) != wizard.Snapshot(d) {
		t.Error("serializing the same draft twice must yield equal strings")
	}
}

func TestSnapshot_UpsellOrderDoesNotMatter(t *testing.T) {
	a := fullDraft()
	a.UpsellIDs = []string{"social", "top", "logo"}
	b := fullDraft()
	b.UpsellIDs = []string{"top", "logo", "social"}
	if wizard.Snapshot(a) != wizard.Snapshot(b) {
		t.Error("upsell selection is a set; ordering must not change the snapshot")
	}
}

func TestSnapshot_DoesNotMutateDraft(t *testing.T) {
	d := fullDraft()
	d.UpsellIDs = []string{"b", "a"}
	_ = wizard.Snapshot(d)
	if d.UpsellIDs[0] != "b" {
		t.Error("Snapshot must not reorder the caller's slice")
	}
}

func TestDirty(t *testing.T) {
	d := fullDraft()
	snap := wizard.Snapshot(d)

	if wizard.Dirty(snap, d) {
		t.Error("unchanged draft should not be dirty")
	}

	d.Title = "Junior Gardener"
	if !wizard.Dirty(snap, d) {
		t.Error("mutated draft should be dirty")
	}

	// a fresh snapshot after the mutation clears dirtiness again
	snap = wizard.Snapshot(d)
	if wizard.Dirty(snap, d) {
		t.Error("draft matching the new snapshot should not be dirty")
	}
}
