package schema

import (
	"context"

	"jobdesk/internal/database"
)

// Apply creates the tables and indexes the service expects. Statements are
// idempotent so the bootstrap can run on every start.
func Apply(ctx context.Context, db database.DB) error {
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('job_seeker', 'employer')),
		is_verified   BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		industry      TEXT NOT NULL DEFAULT '',
		company_size  TEXT NOT NULL DEFAULT '',
		website       TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		logo_url      TEXT NOT NULL DEFAULT '',
		is_verified   BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS skills (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		category   TEXT NOT NULL DEFAULT 'Other',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS job_seeker_profiles (
		id               UUID PRIMARY KEY,
		user_id          UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		bio              TEXT NOT NULL DEFAULT '',
		experience_years INT NOT NULL DEFAULT 0,
		current_salary   NUMERIC(10,2),
		expected_salary  NUMERIC(10,2),
		phone_number     TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		linkedin_profile TEXT NOT NULL DEFAULT '',
		github_profile   TEXT NOT NULL DEFAULT '',
		is_available     BOOLEAN NOT NULL DEFAULT true,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS profile_skills (
		profile_id UUID NOT NULL REFERENCES job_seeker_profiles(id) ON DELETE CASCADE,
		skill_id   UUID NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
		PRIMARY KEY (profile_id, skill_id)
	)`,

	`CREATE TABLE IF NOT EXISTS employer_profiles (
		id               UUID PRIMARY KEY,
		user_id          UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		company_id       UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		job_title        TEXT NOT NULL DEFAULT '',
		department       TEXT NOT NULL DEFAULT '',
		is_company_admin BOOLEAN NOT NULL DEFAULT false,
		can_post_jobs    BOOLEAN NOT NULL DEFAULT false,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id                 UUID PRIMARY KEY,
		company_id         UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		posted_by          UUID REFERENCES users(id) ON DELETE SET NULL,
		title              TEXT NOT NULL,
		location           TEXT NOT NULL DEFAULT '',
		job_type           TEXT NOT NULL,
		experience_level   TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		requirements       TEXT NOT NULL DEFAULT '',
		responsibilities   TEXT NOT NULL DEFAULT '',
		salary_type        TEXT NOT NULL DEFAULT 'negotiable',
		salary_min         NUMERIC(10,2),
		salary_max         NUMERIC(10,2),
		status             TEXT NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'published', 'closed', 'archived')),
		is_remote          BOOLEAN NOT NULL DEFAULT false,
		expires_at         TIMESTAMPTZ,
		views_count        INT NOT NULL DEFAULT 0,
		applications_count INT NOT NULL DEFAULT 0,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS job_skills (
		job_id   UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		skill_id UUID NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
		PRIMARY KEY (job_id, skill_id)
	)`,

	// The unique pair constraint is the race safety net for concurrent
	// duplicate applications; the usecase check alone is not enough.
	`CREATE TABLE IF NOT EXISTS job_applications (
		id           UUID PRIMARY KEY,
		job_id       UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		applicant_id UUID NOT NULL REFERENCES job_seeker_profiles(id) ON DELETE CASCADE,
		status       TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'review', 'shortlisted', 'rejected', 'accepted')),
		cover_letter TEXT NOT NULL DEFAULT '',
		resume_url   TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT job_applications_job_applicant_key UNIQUE (job_id, applicant_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs (company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_job_applications_applicant ON job_applications (applicant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_applications_job ON job_applications (job_id)`,
}
