package handler

import (
	"time"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/pkg/validate"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,url"`
}

type applicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type applicationListResponse struct {
	applicationResponse
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return validationError(fields)
	}

	app, err := h.uc.Apply(c.Context(), userID, jobID, usecase.ApplyInput{
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", applicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		Status:      app.Status,
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
		CreatedAt:   app.CreatedAt,
	})
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]applicationListResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, applicationListResponse{
			applicationResponse: applicationResponse{
				ID:          row.ID,
				JobID:       row.JobID,
				Status:      row.Status,
				CoverLetter: row.CoverLetter,
				ResumeURL:   row.ResumeURL,
				CreatedAt:   row.CreatedAt,
			},
			JobTitle:    row.JobTitle,
			CompanyName: row.CompanyName,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
