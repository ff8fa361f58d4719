package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Animal      *handlers.AnimalHandler
	HealthIssue *handlers.HealthIssueHandler
	Vaccine     *handlers.VaccineHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, gatherer prometheus.Gatherer) {
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// General API rate limiter per IP; 0 turns it off
	if cfg.RateLimitPerMinute > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMinute,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	api.Get("/health", h.Health.Check)

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	// Everything below is scoped to the token's user
	jwt := middleware.JWTProtected(cfg)

	animals := api.Group("/animals", jwt)
	animals.Get("/", h.Animal.List)
	animals.Post("/", h.Animal.Create)
	animals.Get("/with-pending-vaccines", h.Animal.ListWithPendingVaccines)
	animals.Get("/:id<int>", h.Animal.Get)
	animals.Put("/:id<int>", h.Animal.Update)
	animals.Delete("/:id<int>", h.Animal.Delete)

	issues := animals.Group("/:animalId<int>/health-issues")
	issues.Get("/", h.HealthIssue.List)
	issues.Post("/", h.HealthIssue.Create)
	issues.Get("/:id<int>", h.HealthIssue.Get)
	issues.Put("/:id<int>", h.HealthIssue.Update)
	issues.Delete("/:id<int>", h.HealthIssue.Delete)

	vaccines := animals.Group("/:animalId<int>/vaccines")
	vaccines.Get("/", h.Vaccine.List)
	vaccines.Post("/", h.Vaccine.Create)
	vaccines.Get("/non-expired", h.Vaccine.ListNonExpired)
	vaccines.Get("/confirmed", h.Vaccine.ListConfirmed)
	vaccines.Get("/:id<int>", h.Vaccine.Get)
	vaccines.Put("/:id<int>", h.Vaccine.Update)
	vaccines.Patch("/:id<int>/apply", h.Vaccine.Apply)
	vaccines.Delete("/:id<int>", h.Vaccine.Delete)

	api.Get("/vaccines/pending-animals", jwt, h.Animal.PendingAnimals)
}
