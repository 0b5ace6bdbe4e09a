package v1

import (
	"jobdesk/internal/delivery/http/handler"
	"jobdesk/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	Skill       *handler.SkillHandler
	Company     *handler.CompanyHandler
	Profile     *handler.ProfileHandler

	AuthMW *middleware.AuthMiddleware
}

// Register lays out the v1 API. Listing and detail endpoints are public;
// anything that writes or exposes caller-specific data sits behind auth.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	authGroup.Post("/register/job-seeker", h.Auth.RegisterJobSeeker)
	authGroup.Post("/register/employer", h.Auth.RegisterEmployer)
	authGroup.Post("/register/company", h.Auth.RegisterCompany)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)

	r.Get("/jobs", h.Job.List)
	r.Get("/jobs/:id", h.Job.Get)
	r.Get("/jobs/:id/similar", h.Job.Similar)

	r.Get("/skills", h.Skill.ListByCategory)

	r.Get("/companies", h.Company.List)
	r.Get("/companies/:id", h.Company.Get)

	protected := r.Group("", h.AuthMW.Middleware())

	protected.Post("/jobs", h.Job.Create)
	protected.Put("/jobs/:id", h.Job.Update)
	protected.Delete("/jobs/:id", h.Job.Delete)
	protected.Get("/my/jobs", h.Job.MyJobs)
	protected.Get("/my/jobs/statistics", h.Job.Statistics)

	protected.Post("/jobs/:id/apply", h.Application.Apply)
	protected.Get("/applications", h.Application.ListMine)

	protected.Post("/skills", h.Skill.Create)
	protected.Put("/skills/:id", h.Skill.Update)
	protected.Delete("/skills/:id", h.Skill.Delete)

	protected.Get("/my/company", h.Company.Mine)

	protected.Get("/profile", h.Profile.Me)
	protected.Put("/profile", h.Profile.UpdateMe)
	protected.Post("/profile/skills", h.Profile.AddSkills)
	protected.Delete("/profile/skills", h.Profile.RemoveSkills)
}
