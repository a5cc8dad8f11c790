package handlers

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

func TestCanModerate(t *testing.T) {
	if !canModerate(models.VacancyAwaitingApproval) {
		t.Error("a submission awaiting approval should be moderatable")
	}
	for _, s := range []models.VacancyStatus{
		models.VacancyDraft,
		models.VacancyPublished,
		models.VacancyExpired,
		models.VacancyUnpublished,
	} {
		if canModerate(s) {
			t.Errorf("canModerate(%s) should be false", s)
		}
	}
}

func TestRejectMessage(t *testing.T) {
	if got := rejectMessage("  "); got != "vacancy rejected, credits refunded" {
		t.Errorf("blank reason: got %q", got)
	}
	if got := rejectMessage(" missing salary range "); got != "vacancy rejected: missing salary range" {
		t.Errorf("with reason: got %q", got)
	}
}
