package app

import (
	"fmt"
	"strings"

	"jobdesk/internal/config"
	"jobdesk/internal/delivery/http/handler"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container and the fully-routed Fiber app. The
// returned cleanup closes the container's connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	routes.Register(f, routes.Handlers{
		Health:      handler.NewHealthHandler(c.DB, c.Cache),
		Auth:        handler.NewAuthHandler(c.AuthUC),
		Job:         handler.NewJobHandler(c.JobUC),
		Application: handler.NewApplicationHandler(c.ApplicationUC),
		Skill:       handler.NewSkillHandler(c.SkillUC),
		Company:     handler.NewCompanyHandler(c.CompanyUC),
		Profile:     handler.NewProfileHandler(c.ProfileUC),
		AuthMW:      middleware.NewAuthMiddleware(c.JWT),
	})

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
