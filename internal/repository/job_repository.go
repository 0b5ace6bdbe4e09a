package repository

import (
	"context"
	"errors"
	"time"

	"jobdesk/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
	JobStatusArchived  = "archived"
)

type Job struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	CompanyName      string
	CompanyLogoURL   string
	PostedBy         *uuid.UUID
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
	ExpiresAt        *time.Time
	ViewsCount       int
	ApplicationsCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// JobSummary is the listing projection: enough for a search-results card.
type JobSummary struct {
	ID             uuid.UUID
	Title          string
	CompanyName    string
	CompanyLogoURL string
	Location       string
	JobType        string
	SalaryType     string
	SalaryMin      *float64
	SalaryMax      *float64
	IsRemote       bool
	CreatedAt      time.Time
}

type ApplicationStatusCount struct {
	Status string
	Count  int
}

type JobStatistics struct {
	ActiveJobs           int
	TotalApplications    int
	ApplicationsByStatus []ApplicationStatusCount
}

type JobRepository interface {
	List(ctx context.Context, f JobFilter) ([]JobSummary, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetJobSkills(ctx context.Context, jobID uuid.UUID) ([]Skill, error)
	Create(ctx context.Context, j Job, skillIDs []uuid.UUID) error
	Update(ctx context.Context, j Job, skillIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]JobSummary, error)
	ListSimilar(ctx context.Context, jobID uuid.UUID, limit int) ([]JobSummary, error)
	Statistics(ctx context.Context, companyID uuid.UUID) (JobStatistics, error)
	IncrementViews(ctx context.Context, jobID uuid.UUID) error
	IncrementApplications(ctx context.Context, q database.Querier, jobID uuid.UUID) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]JobSummary, error) {
	query, args := BuildJobListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobSummaries(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT j.id, j.company_id, c.name, c.logo_url, j.posted_by, j.title, j.location,
		        j.job_type, j.experience_level, j.description, j.requirements, j.responsibilities,
		        j.salary_type, j.salary_min, j.salary_max, j.status, j.is_remote, j.expires_at,
		        j.views_count, j.applications_count, j.created_at, j.updated_at
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`, id)

	var j Job
	err := row.Scan(&j.ID, &j.CompanyID, &j.CompanyName, &j.CompanyLogoURL, &j.PostedBy, &j.Title,
		&j.Location, &j.JobType, &j.ExperienceLevel, &j.Description, &j.Requirements,
		&j.Responsibilities, &j.SalaryType, &j.SalaryMin, &j.SalaryMax, &j.Status, &j.IsRemote,
		&j.ExpiresAt, &j.ViewsCount, &j.ApplicationsCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) GetJobSkills(ctx context.Context, jobID uuid.UUID) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.category, s.created_at, s.updated_at
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j Job, skillIDs []uuid.UUID) error {
	return database.InTx(ctx, r.db, func(q database.Querier) error {
		_, err := q.Exec(ctx,
			`INSERT INTO jobs (id, company_id, posted_by, title, location, job_type, experience_level,
			                   description, requirements, responsibilities, salary_type, salary_min,
			                   salary_max, status, is_remote, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			j.ID, j.CompanyID, j.PostedBy, j.Title, j.Location, j.JobType, j.ExperienceLevel,
			j.Description, j.Requirements, j.Responsibilities, j.SalaryType, j.SalaryMin,
			j.SalaryMax, j.Status, j.IsRemote, j.ExpiresAt,
		)
		if err != nil {
			return err
		}
		return setJobSkills(ctx, q, j.ID, skillIDs)
	})
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job, skillIDs []uuid.UUID) error {
	return database.InTx(ctx, r.db, func(q database.Querier) error {
		affected, err := q.Exec(ctx,
			`UPDATE jobs
			 SET title = $2, location = $3, job_type = $4, experience_level = $5, description = $6,
			     requirements = $7, responsibilities = $8, salary_type = $9, salary_min = $10,
			     salary_max = $11, status = $12, is_remote = $13, expires_at = $14, updated_at = now()
			 WHERE id = $1`,
			j.ID, j.Title, j.Location, j.JobType, j.ExperienceLevel, j.Description,
			j.Requirements, j.Responsibilities, j.SalaryType, j.SalaryMin, j.SalaryMax,
			j.Status, j.IsRemote, j.ExpiresAt,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrJobNotFound
		}
		if skillIDs == nil {
			return nil
		}
		if _, err := q.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, j.ID); err != nil {
			return err
		}
		return setJobSkills(ctx, q, j.ID, skillIDs)
	})
}

func setJobSkills(ctx context.Context, q database.Querier, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx,
		`INSERT INTO job_skills (job_id, skill_id)
		 SELECT $1, s.id FROM skills s WHERE s.id = ANY($2)
		 ON CONFLICT DO NOTHING`,
		jobID, skillIDs,
	)
	return err
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]JobSummary, error) {
	rows, err := r.db.Query(ctx,
		jobSummarySelect+` WHERE j.company_id = $1 ORDER BY j.created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobSummaries(rows)
}

// ListSimilar returns published jobs sharing at least one skill with the
// given job, most overlapping first.
func (r *PostgresJobRepository) ListSimilar(ctx context.Context, jobID uuid.UUID, limit int) ([]JobSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.title, c.name, c.logo_url, j.location, j.job_type, j.salary_type,
		        j.salary_min, j.salary_max, j.is_remote, j.created_at
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 JOIN job_skills js ON js.job_id = j.id
		 WHERE j.status = 'published'
		   AND j.id <> $1
		   AND js.skill_id IN (SELECT skill_id FROM job_skills WHERE job_id = $1)
		 GROUP BY j.id, c.name, c.logo_url
		 ORDER BY COUNT(js.skill_id) DESC, j.created_at DESC
		 LIMIT $2`, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobSummaries(rows)
}

func (r *PostgresJobRepository) Statistics(ctx context.Context, companyID uuid.UUID) (JobStatistics, error) {
	var st JobStatistics

	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM jobs WHERE company_id = $1 AND status = 'published'`, companyID)
	if err := row.Scan(&st.ActiveJobs); err != nil {
		return JobStatistics{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE j.company_id = $1`, companyID)
	if err := row.Scan(&st.TotalApplications); err != nil {
		return JobStatistics{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT a.status, COUNT(1)
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.company_id = $1
		 GROUP BY a.status
		 ORDER BY a.status ASC`, companyID)
	if err != nil {
		return JobStatistics{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var c ApplicationStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return JobStatistics{}, err
		}
		st.ApplicationsByStatus = append(st.ApplicationsByStatus, c)
	}
	if err := rows.Err(); err != nil {
		return JobStatistics{}, err
	}
	return st, nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, jobID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET views_count = views_count + 1 WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementApplications(ctx context.Context, q database.Querier, jobID uuid.UUID) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = $1`, jobID)
	return err
}

func (r *PostgresJobRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs SET status = 'closed', updated_at = now()
		 WHERE status = 'published' AND expires_at IS NOT NULL AND expires_at < $1`, now)
}

func scanJobSummaries(rows database.Rows) ([]JobSummary, error) {
	out := make([]JobSummary, 0)
	for rows.Next() {
		var s JobSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CompanyName, &s.CompanyLogoURL, &s.Location,
			&s.JobType, &s.SalaryType, &s.SalaryMin, &s.SalaryMax, &s.IsRemote, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
