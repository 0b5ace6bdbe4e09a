package repository

import (
	"context"
	"errors"
	"time"

	"jobdesk/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type JobSeekerProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Bio             string
	ExperienceYears int
	CurrentSalary   *float64
	ExpectedSalary  *float64
	PhoneNumber     string
	Location        string
	LinkedinProfile string
	GithubProfile   string
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EmployerProfile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CompanyID      uuid.UUID
	JobTitle       string
	Department     string
	IsCompanyAdmin bool
	CanPostJobs    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ProfileRepository interface {
	CreateJobSeeker(ctx context.Context, q database.Querier, p JobSeekerProfile) error
	CreateEmployer(ctx context.Context, q database.Querier, p EmployerProfile) error
	GetJobSeekerByUserID(ctx context.Context, userID uuid.UUID) (JobSeekerProfile, error)
	GetEmployerByUserID(ctx context.Context, userID uuid.UUID) (EmployerProfile, error)
	UpdateJobSeeker(ctx context.Context, p JobSeekerProfile) error
	GetProfileSkills(ctx context.Context, profileID uuid.UUID) ([]Skill, error)
	AddProfileSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error
	RemoveProfileSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) CreateJobSeeker(ctx context.Context, q database.Querier, p JobSeekerProfile) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO job_seeker_profiles (id, user_id, bio, experience_years, phone_number, location)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Bio, p.ExperienceYears, p.PhoneNumber, p.Location,
	)
	return err
}

func (r *PostgresProfileRepository) CreateEmployer(ctx context.Context, q database.Querier, p EmployerProfile) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO employer_profiles (id, user_id, company_id, job_title, department, is_company_admin, can_post_jobs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.UserID, p.CompanyID, p.JobTitle, p.Department, p.IsCompanyAdmin, p.CanPostJobs,
	)
	return err
}

func (r *PostgresProfileRepository) GetJobSeekerByUserID(ctx context.Context, userID uuid.UUID) (JobSeekerProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, bio, experience_years, current_salary, expected_salary, phone_number,
		        location, linkedin_profile, github_profile, is_available, created_at, updated_at
		 FROM job_seeker_profiles WHERE user_id = $1`, userID)

	var p JobSeekerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.ExperienceYears, &p.CurrentSalary, &p.ExpectedSalary,
		&p.PhoneNumber, &p.Location, &p.LinkedinProfile, &p.GithubProfile, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobSeekerProfile{}, ErrProfileNotFound
		}
		return JobSeekerProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) GetEmployerByUserID(ctx context.Context, userID uuid.UUID) (EmployerProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, company_id, job_title, department, is_company_admin, can_post_jobs, created_at, updated_at
		 FROM employer_profiles WHERE user_id = $1`, userID)

	var p EmployerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyID, &p.JobTitle, &p.Department,
		&p.IsCompanyAdmin, &p.CanPostJobs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EmployerProfile{}, ErrProfileNotFound
		}
		return EmployerProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) UpdateJobSeeker(ctx context.Context, p JobSeekerProfile) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_seeker_profiles
		 SET bio = $2, experience_years = $3, current_salary = $4, expected_salary = $5,
		     phone_number = $6, location = $7, linkedin_profile = $8, github_profile = $9,
		     is_available = $10, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Bio, p.ExperienceYears, p.CurrentSalary, p.ExpectedSalary,
		p.PhoneNumber, p.Location, p.LinkedinProfile, p.GithubProfile, p.IsAvailable,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) GetProfileSkills(ctx context.Context, profileID uuid.UUID) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.category, s.created_at, s.updated_at
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.profile_id = $1
		 ORDER BY s.category ASC, s.name ASC`, profileID)
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

func (r *PostgresProfileRepository) AddProfileSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error {
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_skills (profile_id, skill_id)
		 SELECT $1, s.id FROM skills s WHERE s.id = ANY($2)
		 ON CONFLICT DO NOTHING`,
		profileID, skillIDs,
	)
	return err
}

func (r *PostgresProfileRepository) RemoveProfileSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error {
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM profile_skills WHERE profile_id = $1 AND skill_id = ANY($2)`,
		profileID, skillIDs,
	)
	return err
}
