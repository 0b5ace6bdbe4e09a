package notification

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type captureMailer struct {
	sent []sentMail
	err  error
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func details(posterEmail *string) repository.ApplicationNotificationDetails {
	return repository.ApplicationNotificationDetails{
		ApplicationID:  uuid.New(),
		JobTitle:       "Backend Engineer",
		CompanyName:    "Acme",
		ApplicantName:  "jane",
		ApplicantEmail: "jane@example.com",
		PosterEmail:    posterEmail,
	}
}

func TestNotifier_ApplicationReceived_SendsBothMails(t *testing.T) {
	mailer := &captureMailer{}
	n := NewNotifier(mailer, log.New(&strings.Builder{}, "", 0))

	poster := "hiring@acme.test"
	n.ApplicationReceived(context.Background(), details(&poster))

	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(mailer.sent))
	}

	applicant := mailer.sent[0]
	if applicant.to != "jane@example.com" {
		t.Fatalf("first mail must go to the applicant, got %s", applicant.to)
	}
	for _, want := range []string{"jane", "Backend Engineer", "Acme"} {
		if !strings.Contains(applicant.body, want) {
			t.Fatalf("applicant mail missing %q:\n%s", want, applicant.body)
		}
	}

	posterMail := mailer.sent[1]
	if posterMail.to != poster {
		t.Fatalf("second mail must go to the poster, got %s", posterMail.to)
	}
	if !strings.Contains(posterMail.body, "jane has applied") {
		t.Fatalf("poster mail missing applicant name:\n%s", posterMail.body)
	}
}

func TestNotifier_ApplicationReceived_NoPoster(t *testing.T) {
	mailer := &captureMailer{}
	n := NewNotifier(mailer, log.New(&strings.Builder{}, "", 0))

	n.ApplicationReceived(context.Background(), details(nil))

	if len(mailer.sent) != 1 {
		t.Fatalf("expected only the applicant mail, got %d", len(mailer.sent))
	}
}

func TestNotifier_ApplicationReceived_SendFailureIsSwallowed(t *testing.T) {
	var logged strings.Builder
	mailer := &captureMailer{err: errors.New("relay refused")}
	n := NewNotifier(mailer, log.New(&logged, "", 0))

	poster := "hiring@acme.test"
	n.ApplicationReceived(context.Background(), details(&poster))

	if !strings.Contains(logged.String(), "relay refused") {
		t.Fatalf("send failure should be logged, got: %s", logged.String())
	}
}
