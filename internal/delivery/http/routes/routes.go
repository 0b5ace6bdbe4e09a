package routes

import (
	"jobdesk/internal/delivery/http/handler"
	"jobdesk/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers bundles everything needed to build the route table. The app
// container wires concrete usecases in; routes only decide paths and which
// groups sit behind auth.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	Skill       *handler.SkillHandler
	Company     *handler.CompanyHandler
	Profile     *handler.ProfileHandler

	AuthMW *middleware.AuthMiddleware
}

func Register(app *fiber.App, h Handlers) {
	if app == nil {
		return
	}

	app.Get("/health", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), h)
}
