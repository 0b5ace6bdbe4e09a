package usecase

import (
	"context"
	"errors"
	"log"

	"jobdesk/internal/database"
	"jobdesk/internal/queue"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type ApplyInput struct {
	CoverLetter string
	ResumeURL   string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID uuid.UUID, in ApplyInput) (repository.JobApplication, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationListRow, error)
}

type Applications struct {
	db       database.DB
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	tasks    queue.Enqueuer
	logger   *log.Logger
}

func NewApplicationUsecase(db database.DB, apps repository.ApplicationRepository, jobs repository.JobRepository, profiles repository.ProfileRepository, tasks queue.Enqueuer, logger *log.Logger) *Applications {
	return &Applications{db: db, apps: apps, jobs: jobs, profiles: profiles, tasks: tasks, logger: logger}
}

// Apply records a job application at most once per (job, applicant) pair.
// Preconditions fail with distinct reasons before anything is written; the
// storage unique constraint settles the race two concurrent appliers can
// still win past the existence check.
func (u *Applications) Apply(ctx context.Context, userID, jobID uuid.UUID, in ApplyInput) (repository.JobApplication, error) {
	profile, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.JobApplication{}, ErrNotJobSeeker
		}
		return repository.JobApplication{}, ErrInternal
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.JobApplication{}, ErrJobNotFound
		}
		return repository.JobApplication{}, ErrInternal
	}
	if job.Status != repository.JobStatusPublished {
		return repository.JobApplication{}, ErrJobNotAccepting
	}

	exists, err := u.apps.ExistsByJobAndApplicant(ctx, jobID, profile.ID)
	if err != nil {
		return repository.JobApplication{}, ErrInternal
	}
	if exists {
		return repository.JobApplication{}, ErrAlreadyApplied
	}

	app := repository.JobApplication{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: profile.ID,
		Status:      repository.ApplicationStatusPending,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
	}

	err = database.InTx(ctx, u.db, func(q database.Querier) error {
		if err := u.apps.Create(ctx, q, app); err != nil {
			return err
		}
		return u.jobs.IncrementApplications(ctx, q, jobID)
	})
	if err != nil {
		if repository.IsUniqueViolation(err, "job_applications_job_applicant_key") {
			return repository.JobApplication{}, ErrAlreadyApplied
		}
		return repository.JobApplication{}, ErrInternal
	}

	if u.tasks != nil {
		err := u.tasks.Enqueue(ctx, queue.Task{Type: queue.TaskApplicationReceived, ApplicationID: app.ID})
		if err != nil && u.logger != nil {
			u.logger.Printf("[Applications] notification enqueue failed for %s: %v", app.ID, err)
		}
	}

	created, err := u.apps.GetByID(ctx, app.ID)
	if err != nil {
		// The row committed; falling back to the input values keeps the
		// response consistent with what was stored.
		return app, nil
	}
	return created, nil
}

// ListMine returns the caller's view: a job seeker sees their applications,
// an employer sees applications to the company's jobs.
func (u *Applications) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationListRow, error) {
	seeker, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err == nil {
		out, err := u.apps.ListByApplicant(ctx, seeker.ID)
		if err != nil {
			return nil, ErrInternal
		}
		return out, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrInternal
	}

	employer, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	out, err := u.apps.ListByCompany(ctx, employer.CompanyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
