package mail

import (
	"log"
	"strings"

	"github.com/google/uuid"
)

// Mailer delivers transactional mail. The platform only needs the join
// verification message for now.
type Mailer interface {
	SendJoinVerification(to, companyName, link string) error
}

// JoinVerificationLink builds the frontend URL that carries the join token.
func JoinVerificationLink(frontendBase string, token uuid.UUID) string {
	return strings.TrimRight(frontendBase, "/") + "/employers/join/verify?token=" + token.String()
}

// LogMailer writes the message to the process log instead of sending it.
// Used until an SMTP provider is configured.
type LogMailer struct{}

func (LogMailer) SendJoinVerification(to, companyName, link string) error {
	log.Printf("[mail] join verification for %s -> %s: %s", companyName, to, link)
	return nil
}
