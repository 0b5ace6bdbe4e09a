package handler

import (
	"errors"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func validationError(fields map[string]string) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, nil)
}

// mapUsecaseError translates usecase sentinels into HTTP errors. Sentinels
// not listed here fall through to a 500 so new ones fail loudly instead of
// leaking as false 4xx.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound),
		errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrSkillNotFound),
		errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, titleCase(err.Error()), nil, err)

	case errors.Is(err, usecase.ErrNotJobSeeker),
		errors.Is(err, usecase.ErrOnlyEmployersPost),
		errors.Is(err, usecase.ErrPostingNotAllowed),
		errors.Is(err, usecase.ErrNotJobOwner),
		errors.Is(err, usecase.ErrNotEmployer):
		return middleware.NewAppError(fiber.StatusForbidden, titleCase(err.Error()), nil, err)

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrSkillNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, titleCase(err.Error()), nil, err)

	case errors.Is(err, usecase.ErrJobNotAccepting),
		errors.Is(err, usecase.ErrAlreadyApplied),
		errors.Is(err, usecase.ErrPasswordMismatch),
		errors.Is(err, usecase.ErrUnknownSkills),
		errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrNegativeSalary),
		errors.Is(err, usecase.ErrInvalidPhone),
		errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, titleCase(err.Error()), nil, err)

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)

	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func titleCase(msg string) string {
	if msg == "" {
		return msg
	}
	b := []byte(msg)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
