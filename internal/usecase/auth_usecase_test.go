package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func testJWT() jwt.Service {
	return jwt.NewHMACService("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAuth_RegisterJobSeeker_CreatesUserAndProfileTogether(t *testing.T) {
	db := &fakeDB{}
	users := &mockUsers{}
	profiles := &mockProfiles{}
	uc := NewAuthUsecase(db, users, profiles, &mockCompanies{}, testJWT())

	res, err := uc.RegisterJobSeeker(context.Background(), RegisterJobSeekerInput{
		Email:           "  Jane@Example.COM ",
		Username:        "jane",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(users.created) != 1 {
		t.Fatalf("expected 1 user created, got %d", len(users.created))
	}
	if users.created[0].Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", users.created[0].Email)
	}
	if users.created[0].Role != repository.RoleJobSeeker {
		t.Fatalf("unexpected role %q", users.created[0].Role)
	}
	if len(profiles.createdSeekers) != 1 {
		t.Fatalf("expected 1 profile created, got %d", len(profiles.createdSeekers))
	}
	if profiles.createdSeekers[0].UserID != users.created[0].ID {
		t.Fatalf("profile not linked to created user")
	}
	if db.commits != 1 {
		t.Fatalf("expected 1 commit, got %d", db.commits)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected tokens to be issued")
	}
}

func TestAuth_RegisterJobSeeker_PasswordMismatch(t *testing.T) {
	uc := NewAuthUsecase(&fakeDB{}, &mockUsers{}, &mockProfiles{}, &mockCompanies{}, testJWT())

	_, err := uc.RegisterJobSeeker(context.Background(), RegisterJobSeekerInput{
		Email:           "jane@example.com",
		Username:        "jane",
		Password:        "password123",
		PasswordConfirm: "different123",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuth_RegisterJobSeeker_ShortPassword(t *testing.T) {
	uc := NewAuthUsecase(&fakeDB{}, &mockUsers{}, &mockProfiles{}, &mockCompanies{}, testJWT())

	_, err := uc.RegisterJobSeeker(context.Background(), RegisterJobSeekerInput{
		Email:           "jane@example.com",
		Username:        "jane",
		Password:        "short",
		PasswordConfirm: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuth_RegisterJobSeeker_EmailTaken(t *testing.T) {
	uc := NewAuthUsecase(&fakeDB{}, &mockUsers{emailTaken: true}, &mockProfiles{}, &mockCompanies{}, testJWT())

	_, err := uc.RegisterJobSeeker(context.Background(), RegisterJobSeekerInput{
		Email:           "jane@example.com",
		Username:        "jane",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuth_RegisterEmployer_UnknownCompany(t *testing.T) {
	uc := NewAuthUsecase(&fakeDB{}, &mockUsers{}, &mockProfiles{}, &mockCompanies{exists: false}, testJWT())

	_, err := uc.RegisterEmployer(context.Background(), RegisterEmployerInput{
		Email:           "bob@example.com",
		Username:        "bob",
		Password:        "password123",
		PasswordConfirm: "password123",
		CompanyID:       uuid.New(),
	})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestAuth_RegisterCompany_FirstAccountIsAdmin(t *testing.T) {
	db := &fakeDB{}
	users := &mockUsers{}
	profiles := &mockProfiles{}
	companies := &mockCompanies{}
	uc := NewAuthUsecase(db, users, profiles, companies, testJWT())

	_, err := uc.RegisterCompany(context.Background(), RegisterCompanyInput{
		CompanyName:     "Acme",
		Email:           "founder@acme.test",
		Username:        "founder",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(companies.created) != 1 {
		t.Fatalf("expected company created")
	}
	if len(users.created) != 1 || users.created[0].Role != repository.RoleEmployer {
		t.Fatalf("expected employer user created")
	}
	if len(profiles.createdEmployers) != 1 {
		t.Fatalf("expected employer profile created")
	}
	p := profiles.createdEmployers[0]
	if !p.IsCompanyAdmin || !p.CanPostJobs {
		t.Fatalf("first company account should be admin with posting rights")
	}
	if p.CompanyID != companies.created[0].ID {
		t.Fatalf("profile not linked to created company")
	}
	if db.commits != 1 {
		t.Fatalf("company, user and profile must commit together, commits=%d", db.commits)
	}
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	users := &mockUsers{byEmail: map[string]repository.User{
		"jane@example.com": {ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash)},
	}}
	uc := NewAuthUsecase(&fakeDB{}, users, &mockProfiles{}, &mockCompanies{}, testJWT())

	_, err := uc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	uc := NewAuthUsecase(&fakeDB{}, &mockUsers{}, &mockProfiles{}, &mockCompanies{}, testJWT())

	_, err := uc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Refresh_RotatesTokens(t *testing.T) {
	svc := testJWT()
	userID := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]repository.User{
		userID: {ID: userID, Email: "jane@example.com", Role: repository.RoleJobSeeker},
	}}
	uc := NewAuthUsecase(&fakeDB{}, users, &mockProfiles{}, &mockCompanies{}, svc)

	refresh, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || newRefresh == "" {
		t.Fatalf("expected both tokens")
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.UserID != userID || claims.TokenType != jwt.TokenTypeAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuth_Refresh_RejectsAccessToken(t *testing.T) {
	svc := testJWT()
	userID := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]repository.User{userID: {ID: userID}}}
	uc := NewAuthUsecase(&fakeDB{}, users, &mockProfiles{}, &mockCompanies{}, svc)

	access, err := svc.GenerateAccessToken(userID, "jane@example.com", repository.RoleJobSeeker)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}

	_, _, err = uc.Refresh(context.Background(), access)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
