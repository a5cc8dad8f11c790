package mail_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/colourful-jobs/platform-backend/internal/services/mail"
)

func TestJoinVerificationLink(t *testing.T) {
	token := uuid.MustParse("7d9f3d44-8c7e-4f7a-9b13-0a2f5f1c6e21")

	cases := []struct {
		base string
		want string
	}{
		{"https://app.colourfuljobs.nl", "https://app.colourfuljobs.nl/employers/join/verify?token=" + token.String()},
		{"https://app.colourfuljobs.nl/", "https://app.colourfuljobs.nl/employers/join/verify?token=" + token.String()},
	}
	for _, c := range cases {
		if got := mail.JoinVerificationLink(c.base, token); got != c.want {
			t.Errorf("JoinVerificationLink(%q) = %q, want %q", c.base, got, c.want)
		}
	}
}

func TestLogMailerImplementsMailer(t *testing.T) {
	var m mail.Mailer = mail.LogMailer{}
	if err := m.SendJoinVerification("anna@groenbedrijf.nl", "Groenbedrijf BV", "https://example.test/verify"); err != nil {
		t.Errorf("LogMailer should never fail, got %v", err)
	}
}
