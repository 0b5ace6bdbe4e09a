package handler

import (
	"errors"
	"strings"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/pkg/validate"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type registerJobSeekerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

type registerEmployerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	CompanyID       string `json:"company_id" validate:"required,uuid"`
	JobTitle        string `json:"job_title" validate:"max=100"`
	Department      string `json:"department" validate:"max=100"`
}

type registerCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Industry    string `json:"industry" validate:"max=100"`
	CompanySize string `json:"company_size" validate:"max=50"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location" validate:"max=200"`

	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	JobTitle        string `json:"job_title" validate:"max=100"`
	Department      string `json:"department" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func (h *AuthHandler) RegisterJobSeeker(c fiber.Ctx) error {
	var req registerJobSeekerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	res, err := h.uc.RegisterJobSeeker(c.Context(), usecase.RegisterJobSeekerInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Registration successful", authResultData(res))
}

func (h *AuthHandler) RegisterEmployer(c fiber.Ctx) error {
	var req registerEmployerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return validationError(map[string]string{"company_id": "must be a valid UUID"})
	}

	res, err := h.uc.RegisterEmployer(c.Context(), usecase.RegisterEmployerInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		CompanyID:       companyID,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Registration successful", authResultData(res))
}

func (h *AuthHandler) RegisterCompany(c fiber.Ctx) error {
	var req registerCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	res, err := h.uc.RegisterCompany(c.Context(), usecase.RegisterCompanyInput{
		CompanyName:     req.CompanyName,
		Industry:        req.Industry,
		CompanySize:     req.CompanySize,
		Website:         req.Website,
		Location:        req.Location,
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Company registered successfully", authResultData(res))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	res, err := h.uc.Login(c.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, authResultData(res))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.Bind().Body(&req); err == nil && req.RefreshToken != "" {
			tok, ok = req.RefreshToken, true
		}
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func authResultData(res usecase.AuthResult) map[string]any {
	return map[string]any{
		"user": authUserResponse{
			ID:       res.User.ID,
			Email:    res.User.Email,
			Username: res.User.Username,
			Role:     res.User.Role,
		},
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
	}
}

func bearerFromAuthorizationHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}
