package usecase

import (
	"context"
	"errors"
	"strings"

	"jobdesk/internal/database"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterJobSeekerInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

type RegisterEmployerInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	CompanyID       uuid.UUID
	JobTitle        string
	Department      string
}

// RegisterCompanyInput is the combined flow: a brand-new company plus its
// first employer account in one unit.
type RegisterCompanyInput struct {
	CompanyName string
	Industry    string
	CompanySize string
	Website     string
	Location    string

	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	JobTitle        string
	Department      string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUser struct {
	ID       uuid.UUID
	Email    string
	Username string
	Role     string
}

type AuthResult struct {
	User         AuthUser
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	RegisterJobSeeker(ctx context.Context, in RegisterJobSeekerInput) (AuthResult, error)
	RegisterEmployer(ctx context.Context, in RegisterEmployerInput) (AuthResult, error)
	RegisterCompany(ctx context.Context, in RegisterCompanyInput) (AuthResult, error)
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	db        database.DB
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	companies repository.CompanyRepository
	jwt       jwt.Service
}

func NewAuthUsecase(db database.DB, users repository.UserRepository, profiles repository.ProfileRepository, companies repository.CompanyRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{db: db, users: users, profiles: profiles, companies: companies, jwt: jwtSvc}
}

// RegisterJobSeeker creates the user and its empty JobSeekerProfile in one
// transaction, so no reader ever observes one without the other.
func (u *Auth) RegisterJobSeeker(ctx context.Context, in RegisterJobSeekerInput) (AuthResult, error) {
	email, username, err := u.validateRegistration(ctx, in.Email, in.Username, in.Password, in.PasswordConfirm)
	if err != nil {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	usr := repository.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         repository.RoleJobSeeker,
	}

	err = database.InTx(ctx, u.db, func(q database.Querier) error {
		if err := u.users.Create(ctx, q, usr); err != nil {
			return err
		}
		return u.profiles.CreateJobSeeker(ctx, q, repository.JobSeekerProfile{
			ID:     uuid.New(),
			UserID: usr.ID,
		})
	})
	if err != nil {
		return AuthResult{}, mapRegistrationError(err)
	}

	return u.issueTokens(usr)
}

func (u *Auth) RegisterEmployer(ctx context.Context, in RegisterEmployerInput) (AuthResult, error) {
	email, username, err := u.validateRegistration(ctx, in.Email, in.Username, in.Password, in.PasswordConfirm)
	if err != nil {
		return AuthResult{}, err
	}

	exists, err := u.companies.ExistsByID(ctx, in.CompanyID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	if !exists {
		return AuthResult{}, ErrCompanyNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	usr := repository.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         repository.RoleEmployer,
	}

	err = database.InTx(ctx, u.db, func(q database.Querier) error {
		if err := u.users.Create(ctx, q, usr); err != nil {
			return err
		}
		return u.profiles.CreateEmployer(ctx, q, repository.EmployerProfile{
			ID:         uuid.New(),
			UserID:     usr.ID,
			CompanyID:  in.CompanyID,
			JobTitle:   in.JobTitle,
			Department: in.Department,
		})
	})
	if err != nil {
		return AuthResult{}, mapRegistrationError(err)
	}

	return u.issueTokens(usr)
}

// RegisterCompany creates company, user and employer profile in one
// transaction; the company goes first so the profile reference is valid.
// The first account of a company administers it and may post jobs.
func (u *Auth) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (AuthResult, error) {
	email, username, err := u.validateRegistration(ctx, in.Email, in.Username, in.Password, in.PasswordConfirm)
	if err != nil {
		return AuthResult{}, err
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	usr := repository.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         repository.RoleEmployer,
	}
	company := repository.Company{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.CompanyName),
		Industry:    strings.TrimSpace(in.Industry),
		CompanySize: strings.TrimSpace(in.CompanySize),
		Website:     strings.TrimSpace(in.Website),
		Location:    strings.TrimSpace(in.Location),
	}

	err = database.InTx(ctx, u.db, func(q database.Querier) error {
		if err := u.companies.Create(ctx, q, company); err != nil {
			return err
		}
		if err := u.users.Create(ctx, q, usr); err != nil {
			return err
		}
		return u.profiles.CreateEmployer(ctx, q, repository.EmployerProfile{
			ID:             uuid.New(),
			UserID:         usr.ID,
			CompanyID:      company.ID,
			JobTitle:       in.JobTitle,
			Department:     in.Department,
			IsCompanyAdmin: true,
			CanPostJobs:    true,
		})
	})
	if err != nil {
		return AuthResult{}, mapRegistrationError(err)
	}

	return u.issueTokens(usr)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return u.issueTokens(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) validateRegistration(ctx context.Context, email, username, password, passwordConfirm string) (string, string, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" {
		return "", "", ErrInvalidInput
	}
	if len(password) < 8 {
		return "", "", ErrInvalidInput
	}
	if password != passwordConfirm {
		return "", "", ErrPasswordMismatch
	}

	taken, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInternal
	}
	if taken {
		return "", "", ErrEmailTaken
	}

	taken, err = u.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInternal
	}
	if taken {
		return "", "", ErrUsernameTaken
	}

	return email, username, nil
}

func (u *Auth) issueTokens(usr repository.User) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{
		User:         AuthUser{ID: usr.ID, Email: usr.Email, Username: usr.Username, Role: usr.Role},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// mapRegistrationError turns a unique-constraint race lost against a
// concurrent registration into the same field-level error as the
// check-before-insert path.
func mapRegistrationError(err error) error {
	switch {
	case repository.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailTaken
	case repository.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameTaken
	default:
		return ErrInternal
	}
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}
