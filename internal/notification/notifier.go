package notification

import (
	"context"
	"log"
	"strings"
	"text/template"

	"jobdesk/internal/repository"
)

var applicantMailTmpl = template.Must(template.New("applicant").Parse(
	`Hi {{.ApplicantName}},

Your application for {{.JobTitle}} at {{.CompanyName}} has been received.

The hiring team will review it and get back to you.
`))

var posterMailTmpl = template.Must(template.New("poster").Parse(
	`{{.ApplicantName}} has applied for your job posting.

Job: {{.JobTitle}}
Company: {{.CompanyName}}

Log in to review the application.
`))

// Notifier turns application events into outbound mail. Send failures are
// logged and swallowed so a flaky relay never fails or retries a task.
type Notifier struct {
	mailer Mailer
	logger *log.Logger
}

func NewNotifier(mailer Mailer, logger *log.Logger) *Notifier {
	return &Notifier{mailer: mailer, logger: logger}
}

func (n *Notifier) ApplicationReceived(ctx context.Context, d repository.ApplicationNotificationDetails) {
	body, err := render(applicantMailTmpl, d)
	if err != nil {
		n.logger.Printf("[Notify] render applicant mail: %v", err)
	} else if err := n.mailer.Send(ctx, d.ApplicantEmail, "Application received: "+d.JobTitle, body); err != nil {
		n.logger.Printf("[Notify] send applicant mail to %s: %v", d.ApplicantEmail, err)
	}

	if d.PosterEmail == nil || *d.PosterEmail == "" {
		return
	}

	body, err = render(posterMailTmpl, d)
	if err != nil {
		n.logger.Printf("[Notify] render poster mail: %v", err)
		return
	}
	if err := n.mailer.Send(ctx, *d.PosterEmail, "New application: "+d.JobTitle, body); err != nil {
		n.logger.Printf("[Notify] send poster mail to %s: %v", *d.PosterEmail, err)
	}
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
