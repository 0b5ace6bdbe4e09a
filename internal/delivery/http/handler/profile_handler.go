package handler

import (
	"context"
	"time"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/pkg/validate"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type updateProfileRequest struct {
	Bio             string   `json:"bio" validate:"max=2000"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	CurrentSalary   *float64 `json:"current_salary"`
	ExpectedSalary  *float64 `json:"expected_salary"`
	PhoneNumber     string   `json:"phone_number" validate:"omitempty,startswith=+,max=20"`
	Location        string   `json:"location" validate:"max=200"`
	LinkedinProfile string   `json:"linkedin_profile" validate:"omitempty,url"`
	GithubProfile   string   `json:"github_profile" validate:"omitempty,url"`
	IsAvailable     bool     `json:"is_available"`
}

type profileSkillsRequest struct {
	SkillIDs []string `json:"skill_ids" validate:"required,min=1"`
}

type profileResponse struct {
	ID              uuid.UUID       `json:"id"`
	Bio             string          `json:"bio,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	CurrentSalary   *float64        `json:"current_salary"`
	ExpectedSalary  *float64        `json:"expected_salary"`
	PhoneNumber     string          `json:"phone_number,omitempty"`
	Location        string          `json:"location,omitempty"`
	LinkedinProfile string          `json:"linkedin_profile,omitempty"`
	GithubProfile   string          `json:"github_profile,omitempty"`
	IsAvailable     bool            `json:"is_available"`
	Skills          []skillResponse `json:"skills"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileData(view))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	view, err := h.uc.UpdateMe(c.Context(), userID, usecase.UpdateProfileInput{
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		CurrentSalary:   req.CurrentSalary,
		ExpectedSalary:  req.ExpectedSalary,
		PhoneNumber:     req.PhoneNumber,
		Location:        req.Location,
		LinkedinProfile: req.LinkedinProfile,
		GithubProfile:   req.GithubProfile,
		IsAvailable:     req.IsAvailable,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile updated successfully", profileData(view))
}

func (h *ProfileHandler) AddSkills(c fiber.Ctx) error {
	return h.mutateSkills(c, h.uc.AddSkills, "Skills added successfully")
}

func (h *ProfileHandler) RemoveSkills(c fiber.Ctx) error {
	return h.mutateSkills(c, h.uc.RemoveSkills, "Skills removed successfully")
}

func (h *ProfileHandler) mutateSkills(c fiber.Ctx, op func(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (usecase.ProfileView, error), okMsg string) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req profileSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	skillIDs := make([]uuid.UUID, 0, len(req.SkillIDs))
	for _, raw := range req.SkillIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return validationError(map[string]string{"skill_ids": "must be valid UUIDs"})
		}
		skillIDs = append(skillIDs, id)
	}

	view, err := op(c.Context(), userID, skillIDs)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, okMsg, profileData(view))
}

func profileData(view usecase.ProfileView) profileResponse {
	skills := make([]skillResponse, 0, len(view.Skills))
	for _, s := range view.Skills {
		skills = append(skills, skillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}

	p := view.Profile
	return profileResponse{
		ID:              p.ID,
		Bio:             p.Bio,
		ExperienceYears: p.ExperienceYears,
		CurrentSalary:   p.CurrentSalary,
		ExpectedSalary:  p.ExpectedSalary,
		PhoneNumber:     p.PhoneNumber,
		Location:        p.Location,
		LinkedinProfile: p.LinkedinProfile,
		GithubProfile:   p.GithubProfile,
		IsAvailable:     p.IsAvailable,
		Skills:          skills,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
