package repository

import (
	"context"
	"errors"
	"time"

	"jobdesk/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrApplicationNotFound = errors.New("application not found")

const ApplicationStatusPending = "pending"

type JobApplication struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	Status      string
	CoverLetter string
	ResumeURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationListRow joins in the fields both listing views need.
type ApplicationListRow struct {
	JobApplication
	JobTitle    string
	CompanyName string
}

// ApplicationNotificationDetails carries everything the notification
// templates reference, fetched in one query by the worker.
type ApplicationNotificationDetails struct {
	ApplicationID  uuid.UUID
	JobTitle       string
	CompanyName    string
	ApplicantName  string
	ApplicantEmail string
	PosterEmail    *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, q database.Querier, a JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (JobApplication, error)
	ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationListRow, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]ApplicationListRow, error)
	GetNotificationDetails(ctx context.Context, id uuid.UUID) (ApplicationNotificationDetails, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, q database.Querier, a JobApplication) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO job_applications (id, job_id, applicant_id, status, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.ApplicantID, a.Status, a.CoverLetter, a.ResumeURL,
	)
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (JobApplication, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, applicant_id, status, cover_letter, resume_url, created_at, updated_at
		 FROM job_applications WHERE id = $1`, id)

	var a JobApplication
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter, &a.ResumeURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobApplication{}, ErrApplicationNotFound
		}
		return JobApplication{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const applicationListSelect = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.cover_letter, a.resume_url,
	a.created_at, a.updated_at, j.title, c.name
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id`

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationListRow, error) {
	rows, err := r.db.Query(ctx,
		applicationListSelect+` WHERE a.applicant_id = $1 ORDER BY a.created_at DESC`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplicationRows(rows)
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]ApplicationListRow, error) {
	rows, err := r.db.Query(ctx,
		applicationListSelect+` WHERE j.company_id = $1 ORDER BY a.created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplicationRows(rows)
}

func (r *PostgresApplicationRepository) GetNotificationDetails(ctx context.Context, id uuid.UUID) (ApplicationNotificationDetails, error) {
	row := r.db.QueryRow(ctx,
		`SELECT a.id, j.title, c.name, u.username, u.email, poster.email
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company_id
		 JOIN job_seeker_profiles p ON p.id = a.applicant_id
		 JOIN users u ON u.id = p.user_id
		 LEFT JOIN users poster ON poster.id = j.posted_by
		 WHERE a.id = $1`, id)

	var d ApplicationNotificationDetails
	err := row.Scan(&d.ApplicationID, &d.JobTitle, &d.CompanyName, &d.ApplicantName, &d.ApplicantEmail, &d.PosterEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationNotificationDetails{}, ErrApplicationNotFound
		}
		return ApplicationNotificationDetails{}, err
	}
	return d, nil
}

func scanApplicationRows(rows database.Rows) ([]ApplicationListRow, error) {
	out := make([]ApplicationListRow, 0)
	for rows.Next() {
		var a ApplicationListRow
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter, &a.ResumeURL,
			&a.CreatedAt, &a.UpdatedAt, &a.JobTitle, &a.CompanyName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
