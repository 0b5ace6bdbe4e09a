package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobdesk/internal/queue"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

var jobStatuses = map[string]struct{}{
	repository.JobStatusDraft:     {},
	repository.JobStatusPublished: {},
	repository.JobStatusClosed:    {},
	repository.JobStatusArchived:  {},
}

type JobDetail struct {
	Job    repository.Job
	Skills []repository.Skill
}

type JobInput struct {
	Title            string
	Location         string
	JobType          string
	ExperienceLevel  string
	Description      string
	Requirements     string
	Responsibilities string
	SalaryType       string
	SalaryMin        *float64
	SalaryMax        *float64
	Status           string
	IsRemote         bool
	SkillIDs         []uuid.UUID
}

type JobUsecase interface {
	List(ctx context.Context, f repository.JobFilter) ([]repository.JobSummary, error)
	Get(ctx context.Context, id uuid.UUID) (JobDetail, error)
	Create(ctx context.Context, userID uuid.UUID, in JobInput) (JobDetail, error)
	Update(ctx context.Context, userID, jobID uuid.UUID, in JobInput) (JobDetail, error)
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
	MyJobs(ctx context.Context, userID uuid.UUID) ([]repository.JobSummary, error)
	Similar(ctx context.Context, jobID uuid.UUID) ([]repository.JobSummary, error)
	Statistics(ctx context.Context, userID uuid.UUID) (repository.JobStatistics, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	tasks    queue.Enqueuer
	logger   *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, profiles repository.ProfileRepository, skills repository.SkillRepository, tasks queue.Enqueuer, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, profiles: profiles, skills: skills, tasks: tasks, logger: logger}
}

// List serves the public search. Filter composition and the sort allow-list
// live in the query builder; empty skills behave as if absent.
func (u *Jobs) List(ctx context.Context, f repository.JobFilter) ([]repository.JobSummary, error) {
	out, err := u.jobs.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Get returns the full job and schedules the best-effort view counter. The
// response never waits on, nor fails because of, the enqueue.
func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (JobDetail, error) {
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		return JobDetail{}, ErrInternal
	}

	skills, err := u.jobs.GetJobSkills(ctx, id)
	if err != nil {
		return JobDetail{}, ErrInternal
	}

	if u.tasks != nil {
		if err := u.tasks.Enqueue(ctx, queue.Task{Type: queue.TaskJobView, JobID: id}); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] view task enqueue failed for %s: %v", id, err)
		}
	}

	return JobDetail{Job: job, Skills: skills}, nil
}

func (u *Jobs) Create(ctx context.Context, userID uuid.UUID, in JobInput) (JobDetail, error) {
	profile, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return JobDetail{}, ErrOnlyEmployersPost
		}
		return JobDetail{}, ErrInternal
	}
	if !profile.CanPostJobs {
		return JobDetail{}, ErrPostingNotAllowed
	}

	if err := u.validateJobInput(ctx, &in); err != nil {
		return JobDetail{}, err
	}

	job := repository.Job{
		ID:               uuid.New(),
		CompanyID:        profile.CompanyID,
		PostedBy:         &userID,
		Title:            strings.TrimSpace(in.Title),
		Location:         strings.TrimSpace(in.Location),
		JobType:          in.JobType,
		ExperienceLevel:  in.ExperienceLevel,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		SalaryType:       in.SalaryType,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		Status:           in.Status,
		IsRemote:         in.IsRemote,
	}

	if err := u.jobs.Create(ctx, job, in.SkillIDs); err != nil {
		return JobDetail{}, ErrInternal
	}
	return u.Get(ctx, job.ID)
}

func (u *Jobs) Update(ctx context.Context, userID, jobID uuid.UUID, in JobInput) (JobDetail, error) {
	job, err := u.authorizeJobEdit(ctx, userID, jobID)
	if err != nil {
		return JobDetail{}, err
	}

	if err := u.validateJobInput(ctx, &in); err != nil {
		return JobDetail{}, err
	}

	job.Title = strings.TrimSpace(in.Title)
	job.Location = strings.TrimSpace(in.Location)
	job.JobType = in.JobType
	job.ExperienceLevel = in.ExperienceLevel
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.Responsibilities = in.Responsibilities
	job.SalaryType = in.SalaryType
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.Status = in.Status
	job.IsRemote = in.IsRemote

	if err := u.jobs.Update(ctx, job, in.SkillIDs); err != nil {
		return JobDetail{}, ErrInternal
	}

	skills, err := u.jobs.GetJobSkills(ctx, jobID)
	if err != nil {
		return JobDetail{}, ErrInternal
	}
	return JobDetail{Job: job, Skills: skills}, nil
}

func (u *Jobs) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	if _, err := u.authorizeJobEdit(ctx, userID, jobID); err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, jobID); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Jobs) MyJobs(ctx context.Context, userID uuid.UUID) ([]repository.JobSummary, error) {
	profile, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrNotEmployer
		}
		return nil, ErrInternal
	}

	out, err := u.jobs.ListByCompany(ctx, profile.CompanyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Jobs) Similar(ctx context.Context, jobID uuid.UUID) ([]repository.JobSummary, error) {
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	out, err := u.jobs.ListSimilar(ctx, jobID, 5)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Jobs) Statistics(ctx context.Context, userID uuid.UUID) (repository.JobStatistics, error) {
	profile, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.JobStatistics{}, ErrNotEmployer
		}
		return repository.JobStatistics{}, ErrInternal
	}

	st, err := u.jobs.Statistics(ctx, profile.CompanyID)
	if err != nil {
		return repository.JobStatistics{}, ErrInternal
	}
	return st, nil
}

// authorizeJobEdit allows the original poster, or any company admin of the
// owning company, to edit or delete a job.
func (u *Jobs) authorizeJobEdit(ctx context.Context, userID, jobID uuid.UUID) (repository.Job, error) {
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	if job.PostedBy != nil && *job.PostedBy == userID {
		return job, nil
	}

	profile, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Job{}, ErrNotJobOwner
		}
		return repository.Job{}, ErrInternal
	}
	if profile.CompanyID != job.CompanyID || !profile.IsCompanyAdmin {
		return repository.Job{}, ErrNotJobOwner
	}
	return job, nil
}

func (u *Jobs) validateJobInput(ctx context.Context, in *JobInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.JobType) == "" || strings.TrimSpace(in.ExperienceLevel) == "" {
		return ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = repository.JobStatusDraft
	}
	if _, ok := jobStatuses[in.Status]; !ok {
		return ErrInvalidInput
	}
	if in.SalaryMin != nil && *in.SalaryMin < 0 {
		return ErrNegativeSalary
	}
	if in.SalaryMax != nil && *in.SalaryMax < 0 {
		return ErrNegativeSalary
	}
	if len(in.SkillIDs) > 0 {
		count, err := u.skills.CountByIDs(ctx, in.SkillIDs)
		if err != nil {
			return ErrInternal
		}
		if count != len(in.SkillIDs) {
			return ErrUnknownSkills
		}
	}
	return nil
}
