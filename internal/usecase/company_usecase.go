package usecase

import (
	"context"
	"errors"

	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type CompanyUsecase interface {
	List(ctx context.Context, f repository.CompanyFilter) ([]repository.Company, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Company, error)
	Mine(ctx context.Context, userID uuid.UUID) (repository.Company, error)
}

type Companies struct {
	companies repository.CompanyRepository
	profiles  repository.ProfileRepository
}

func NewCompanyUsecase(companies repository.CompanyRepository, profiles repository.ProfileRepository) *Companies {
	return &Companies{companies: companies, profiles: profiles}
}

func (u *Companies) List(ctx context.Context, f repository.CompanyFilter) ([]repository.Company, error) {
	out, err := u.companies.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Companies) Get(ctx context.Context, id uuid.UUID) (repository.Company, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return repository.Company{}, ErrCompanyNotFound
		}
		return repository.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) Mine(ctx context.Context, userID uuid.UUID) (repository.Company, error) {
	profile, err := u.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Company{}, ErrNotEmployer
		}
		return repository.Company{}, ErrInternal
	}
	return u.Get(ctx, profile.CompanyID)
}
