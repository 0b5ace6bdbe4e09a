package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobdesk/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCompanyNotFound = errors.New("company not found")

type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Industry    string
	CompanySize string
	Website     string
	Location    string
	LogoURL     string
	IsVerified  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CompanyFilter struct {
	Industry    string
	Location    string
	CompanySize string
	Limit       int
	Offset      int
}

type CompanyRepository interface {
	Create(ctx context.Context, q database.Querier, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f CompanyFilter) ([]Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, q database.Querier, c Company) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO companies (id, name, description, industry, company_size, website, location, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Description, c.Industry, c.CompanySize, c.Website, c.Location, c.LogoURL,
	)
	return err
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, industry, company_size, website, location, logo_url, is_verified, created_at, updated_at
		 FROM companies WHERE id = $1`, id)

	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Industry, &c.CompanySize,
		&c.Website, &c.Location, &c.LogoURL, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) List(ctx context.Context, f CompanyFilter) ([]Company, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Industry); s != "" {
		where = append(where, "industry ILIKE "+arg("%"+s+"%"))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		where = append(where, "location ILIKE "+arg("%"+s+"%"))
	}
	if s := strings.TrimSpace(f.CompanySize); s != "" {
		where = append(where, "company_size = "+arg(s))
	}

	query := `SELECT id, name, description, industry, company_size, website, location, logo_url, is_verified, created_at, updated_at
		 FROM companies WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Industry, &c.CompanySize,
			&c.Website, &c.Location, &c.LogoURL, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
