package handler

import (
	"strconv"
	"time"

	"jobdesk/internal/pkg/response"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

type companyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	CompanySize string    `json:"company_size,omitempty"`
	Website     string    `json:"website,omitempty"`
	Location    string    `json:"location,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	f := repository.CompanyFilter{
		Industry:    c.Query("industry"),
		Location:    c.Query("location"),
		CompanySize: c.Query("company_size"),
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Offset = v
		}
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]companyResponse, 0, len(items))
	for _, it := range items {
		res = append(res, companyData(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	company, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, companyData(company))
}

func (h *CompanyHandler) Mine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	company, err := h.uc.Mine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, companyData(company))
}

func companyData(co repository.Company) companyResponse {
	return companyResponse{
		ID:          co.ID,
		Name:        co.Name,
		Description: co.Description,
		Industry:    co.Industry,
		CompanySize: co.CompanySize,
		Website:     co.Website,
		Location:    co.Location,
		LogoURL:     co.LogoURL,
		IsVerified:  co.IsVerified,
		CreatedAt:   co.CreatedAt,
	}
}
