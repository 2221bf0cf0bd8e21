package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-service/internal/api/http/handlers"
	"github.com/spec-kit/profile-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Users          *handlers.UsersHandler
	Setup          *handlers.SetupHandler
	Organizations  *handlers.OrganizationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Metrics.Counters)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireUser())
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	profile := app.Group("/profile", cfg.AuthMiddleware.Handle, auth.RequireUser())
	profile.Get("", cfg.Setup.Profile)
	profile.Get("/setup", cfg.Setup.Start)
	profile.Delete("/setup", cfg.Setup.Abandon)
	profile.Post("/setup/name", cfg.Setup.SubmitName)
	profile.Post("/setup/phone", cfg.Setup.SubmitPhone)
	profile.Post("/setup/next", cfg.Setup.Next)
	profile.Post("/setup/previous", cfg.Setup.Previous)
	profile.Post("/setup/summary", cfg.Setup.Summary)
	profile.Post("/setup/skip", cfg.Setup.Skip)
	profile.Post("/setup/verification/send", cfg.Setup.SendCode)
	profile.Post("/setup/verification/verify", cfg.Setup.VerifyCode)

	orgs := app.Group("/organizations", cfg.AuthMiddleware.Handle, auth.RequireUser())
	orgs.Post("", cfg.Organizations.Create)
	orgs.Get("", cfg.Organizations.List)
	orgs.Get("/:id", cfg.Organizations.Get)
	orgs.Put("/:id", cfg.Organizations.Update)
	orgs.Delete("/:id", cfg.Organizations.Archive)
	orgs.Post("/:id/applications", cfg.Organizations.CreateApplication)
	orgs.Get("/:id/applications", cfg.Organizations.ListApplications)
}
