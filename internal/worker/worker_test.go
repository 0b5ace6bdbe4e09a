package worker

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"jobdesk/internal/notification"
	"jobdesk/internal/queue"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type stubJobs struct {
	repository.JobRepository

	incremented []uuid.UUID
	incErr      error
}

func (s *stubJobs) IncrementViews(_ context.Context, id uuid.UUID) error {
	if s.incErr != nil {
		return s.incErr
	}
	s.incremented = append(s.incremented, id)
	return nil
}

type stubApps struct {
	repository.ApplicationRepository

	details    repository.ApplicationNotificationDetails
	detailsErr error
}

func (s *stubApps) GetNotificationDetails(context.Context, uuid.UUID) (repository.ApplicationNotificationDetails, error) {
	if s.detailsErr != nil {
		return repository.ApplicationNotificationDetails{}, s.detailsErr
	}
	return s.details, nil
}

type recordMailer struct {
	to []string
}

func (m *recordMailer) Send(_ context.Context, to, _, _ string) error {
	m.to = append(m.to, to)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(&strings.Builder{}, "", 0)
}

func TestWorker_Handle_JobView(t *testing.T) {
	jobs := &stubJobs{}
	w := New(jobs, &stubApps{}, nil, quietLogger())

	jobID := uuid.New()
	if err := w.Handle(context.Background(), queue.Task{Type: queue.TaskJobView, JobID: jobID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs.incremented) != 1 || jobs.incremented[0] != jobID {
		t.Fatalf("view not counted: %v", jobs.incremented)
	}
}

func TestWorker_Handle_JobViewMissingJobIsTerminal(t *testing.T) {
	jobs := &stubJobs{incErr: repository.ErrJobNotFound}
	w := New(jobs, &stubApps{}, nil, quietLogger())

	if err := w.Handle(context.Background(), queue.Task{Type: queue.TaskJobView, JobID: uuid.New()}); err != nil {
		t.Fatalf("deleted job must not be treated as a failure, got %v", err)
	}
}

func TestWorker_Handle_ApplicationReceived(t *testing.T) {
	poster := "hiring@acme.test"
	apps := &stubApps{details: repository.ApplicationNotificationDetails{
		JobTitle:       "Backend Engineer",
		CompanyName:    "Acme",
		ApplicantName:  "jane",
		ApplicantEmail: "jane@example.com",
		PosterEmail:    &poster,
	}}
	mailer := &recordMailer{}
	w := New(&stubJobs{}, apps, notification.NewNotifier(mailer, quietLogger()), quietLogger())

	err := w.Handle(context.Background(), queue.Task{Type: queue.TaskApplicationReceived, ApplicationID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mailer.to) != 2 || mailer.to[0] != "jane@example.com" || mailer.to[1] != poster {
		t.Fatalf("unexpected recipients: %v", mailer.to)
	}
}

func TestWorker_Handle_ApplicationGoneIsTerminal(t *testing.T) {
	apps := &stubApps{detailsErr: repository.ErrApplicationNotFound}
	w := New(&stubJobs{}, apps, nil, quietLogger())

	err := w.Handle(context.Background(), queue.Task{Type: queue.TaskApplicationReceived, ApplicationID: uuid.New()})
	if err != nil {
		t.Fatalf("missing application must be dropped, got %v", err)
	}
}

func TestWorker_Handle_TransientErrorPropagates(t *testing.T) {
	apps := &stubApps{detailsErr: errors.New("connection reset")}
	w := New(&stubJobs{}, apps, nil, quietLogger())

	err := w.Handle(context.Background(), queue.Task{Type: queue.TaskApplicationReceived, ApplicationID: uuid.New()})
	if err == nil {
		t.Fatalf("transient lookup failure should surface")
	}
}

func TestWorker_Handle_UnknownTypeDropped(t *testing.T) {
	w := New(&stubJobs{}, &stubApps{}, nil, quietLogger())

	if err := w.Handle(context.Background(), queue.Task{Type: "bogus", EnqueuedAt: time.Now()}); err != nil {
		t.Fatalf("unknown task types are dropped, got %v", err)
	}
}
