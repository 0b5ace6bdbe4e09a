package usecase

import (
	"context"
	"errors"
	"strings"

	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type ProfileView struct {
	Profile repository.JobSeekerProfile
	Skills  []repository.Skill
}

type UpdateProfileInput struct {
	Bio             string
	ExperienceYears int
	CurrentSalary   *float64
	ExpectedSalary  *float64
	PhoneNumber     string
	Location        string
	LinkedinProfile string
	GithubProfile   string
	IsAvailable     bool
}

type ProfileUsecase interface {
	Me(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error)
	AddSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (ProfileView, error)
	RemoveSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (ProfileView, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository, skills repository.SkillRepository) *Profiles {
	return &Profiles{profiles: profiles, skills: skills}
}

func (u *Profiles) Me(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	return u.view(ctx, userID)
}

func (u *Profiles) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error) {
	if in.CurrentSalary != nil && *in.CurrentSalary < 0 {
		return ProfileView{}, ErrNegativeSalary
	}
	if in.ExpectedSalary != nil && *in.ExpectedSalary < 0 {
		return ProfileView{}, ErrNegativeSalary
	}
	if phone := strings.TrimSpace(in.PhoneNumber); phone != "" && !strings.HasPrefix(phone, "+") {
		return ProfileView{}, ErrInvalidPhone
	}
	if in.ExperienceYears < 0 {
		return ProfileView{}, ErrInvalidInput
	}

	profile, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, ErrInternal
	}

	profile.Bio = in.Bio
	profile.ExperienceYears = in.ExperienceYears
	profile.CurrentSalary = in.CurrentSalary
	profile.ExpectedSalary = in.ExpectedSalary
	profile.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	profile.Location = strings.TrimSpace(in.Location)
	profile.LinkedinProfile = strings.TrimSpace(in.LinkedinProfile)
	profile.GithubProfile = strings.TrimSpace(in.GithubProfile)
	profile.IsAvailable = in.IsAvailable

	if err := u.profiles.UpdateJobSeeker(ctx, profile); err != nil {
		return ProfileView{}, ErrInternal
	}
	return u.view(ctx, userID)
}

func (u *Profiles) AddSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (ProfileView, error) {
	profile, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, ErrInternal
	}

	if len(skillIDs) > 0 {
		count, err := u.skills.CountByIDs(ctx, skillIDs)
		if err != nil {
			return ProfileView{}, ErrInternal
		}
		if count != len(skillIDs) {
			return ProfileView{}, ErrUnknownSkills
		}
		if err := u.profiles.AddProfileSkills(ctx, profile.ID, skillIDs); err != nil {
			return ProfileView{}, ErrInternal
		}
	}
	return u.view(ctx, userID)
}

func (u *Profiles) RemoveSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (ProfileView, error) {
	profile, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, ErrInternal
	}

	if err := u.profiles.RemoveProfileSkills(ctx, profile.ID, skillIDs); err != nil {
		return ProfileView{}, ErrInternal
	}
	return u.view(ctx, userID)
}

func (u *Profiles) view(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	profile, err := u.profiles.GetJobSeekerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, ErrInternal
	}

	skills, err := u.profiles.GetProfileSkills(ctx, profile.ID)
	if err != nil {
		return ProfileView{}, ErrInternal
	}
	return ProfileView{Profile: profile, Skills: skills}, nil
}
