package routes

import (
	v1 "jobdesk/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Handlers{
		Auth:        h.Auth,
		Job:         h.Job,
		Application: h.Application,
		Skill:       h.Skill,
		Company:     h.Company,
		Profile:     h.Profile,
		AuthMW:      h.AuthMW,
	})
}
