package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/thesis-api/internal/config"
	"github.com/noah-isme/thesis-api/internal/handler"
	"github.com/noah-isme/thesis-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	HealthHandler    *handler.HealthHandler
	ScoreHandler     *handler.ScoreHandler
	ThesisHandler    *handler.ThesisHandler
	CriteriaHandler  *handler.CriteriaHandler
	CouncilHandler   *handler.CouncilHandler
	ReportHandler    *handler.ReportHandler
	StatsHandler     *handler.StatsHandler
	PostHandler      *handler.PostHandler
	DirectoryHandler *handler.DirectoryHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := app.Group("/api/v1", jwtMiddleware)

	if deps.ThesisHandler != nil {
		deps.ThesisHandler.Register(protected)
	}
	if deps.CriteriaHandler != nil {
		deps.CriteriaHandler.Register(protected)
	}
	if deps.ScoreHandler != nil {
		deps.ScoreHandler.Register(protected)
	}
	if deps.CouncilHandler != nil {
		deps.CouncilHandler.Register(protected)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(protected)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(protected)
	}
	if deps.PostHandler != nil {
		deps.PostHandler.Register(protected)
	}
	if deps.DirectoryHandler != nil {
		deps.DirectoryHandler.Register(protected)
	}
}
