package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/auth"
	"propertyapi/internal/http/middleware"
	"propertyapi/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Listings  service.ListingService
	Images    service.ImageService
	Guard     *auth.Guard
	DB        Pinger
	StartedAt time.Time
}

// RegisterRoutes attaches the API at the root and again under /api, the prefix
// the admin frontend uses.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.StartedAt.IsZero() {
		d.StartedAt = time.Now()
	}

	app.Get("/healthz", LivenessProbe())
	app.Get("/uploads/:filename", ServeImage(d.Images))

	registerAPI(app, d)
	registerAPI(app.Group("/api"), d)
}

func registerAPI(r fiber.Router, d Deps) {
	guard := middleware.RequireAccessToken(d.Guard)

	r.Get("/properties", ListProperties(d.Listings))
	r.Get("/properties/:id", GetProperty(d.Listings))
	r.Post("/properties", guard, CreateProperty(d.Listings))
	r.Put("/properties/:id", guard, UpdateProperty(d.Listings))
	r.Delete("/properties/:id", guard, DeleteProperty(d.Listings))

	r.Post("/upload", guard, UploadImages(d.Images))
	r.Delete("/upload/:filename", guard, DeleteImage(d.Images))

	login := TokenLogin(d.Guard)
	r.Post("/auth/token-login", login)
	r.Post("/token-login", login)

	r.Get("/health", guard, HealthCheck(d.DB, d.StartedAt))
}
