package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propertyapi/docs"
	"propertyapi/internal/auth"
	"propertyapi/internal/config"
	"propertyapi/internal/database"
	"propertyapi/internal/database/migration"
	"propertyapi/internal/events"
	handlers "propertyapi/internal/http/handler"
	"propertyapi/internal/http/middleware"
	"propertyapi/internal/logging"
	"propertyapi/internal/otel"
	"propertyapi/internal/repository/document"
	"propertyapi/internal/repository/postgres"
	redisrepo "propertyapi/internal/repository/redis"
	"propertyapi/internal/service"
	"propertyapi/internal/storage"
)

// @title Property Listing API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey AccessToken
// @in header
// @name X-Access-Token
func main() {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	log := logging.New(os.Stdout, loc)

	if err := run(cfg, log); err != nil {
		log.Error("server_exit", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	backend, db, closeBackend, err := openListingBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	objStore, err := openImageStore(cfg)
	if err != nil {
		return err
	}

	publisher := openPublisher(cfg, log)
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	svcMetrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register service metrics: %w", err)
	}

	images := service.NewImageService(objStore, service.ImageOptions{
		MaxFileBytes: cfg.Upload.MaxFileBytes,
		MaxFiles:     cfg.Upload.MaxFiles,
	}, log, svcMetrics)
	listings := service.NewListingService(document.NewStore(backend, log), images, publisher, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Oversized single files must reach the image service to be reported as 413.
		BodyLimit: int(cfg.Upload.MaxFileBytes)*(cfg.Upload.MaxFiles+1) + 1<<20,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
			log.Error("panic_recovered", fmt.Errorf("%v", e), map[string]any{"request_id": rid, "path": c.Path()})
		},
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept,
			fiber.HeaderAuthorization, middleware.AccessTokenHeader, middleware.RequestIDHeader,
		}, ", "),
	}))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	deps := handlers.Deps{
		Listings:  listings,
		Images:    images,
		Guard:     auth.NewGuard(cfg.AccessToken),
		StartedAt: time.Now(),
	}
	if db != nil {
		deps.DB = db
	}
	handlers.RegisterRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_start", map[string]any{
			"port":            cfg.Port,
			"listing_backend": cfg.Store.ListingBackend,
			"image_backend":   cfg.Store.ImageBackend,
		})
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutdown", nil)
	return app.ShutdownWithTimeout(10 * time.Second)
}

// openListingBackend returns the document backend and, for postgres, the open pool.
// The returned closer releases any other connection the backend holds.
func openListingBackend(ctx context.Context, cfg *config.AppConfig, log *logging.Logger) (document.Backend, *sql.DB, func(), error) {
	switch cfg.Store.ListingBackend {
	case config.ListingBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewDocumentPostgres(db, cfg.Store.DataFile), db, func() { db.Close() }, nil
	case config.ListingBackendRedis:
		client, err := redisrepo.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return redisrepo.NewDocumentRedis(client, cfg.Redis.Key), nil, func() { client.Close() }, nil
	case config.ListingBackendFile, "":
		fb := document.NewFileBackend(cfg.Store.DataPath())
		if err := fb.Init(); err != nil {
			return nil, nil, nil, err
		}
		return fb, nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown LISTING_BACKEND %q", cfg.Store.ListingBackend)
	}
}

func openImageStore(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Store.ImageBackend {
	case config.ImageBackendMinIO:
		s, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return s, nil
	case config.ImageBackendLocal, "":
		return storage.NewLocal(cfg.Store.UploadDir)
	default:
		return nil, fmt.Errorf("unknown IMAGE_BACKEND %q", cfg.Store.ImageBackend)
	}
}

// openPublisher never fails startup: without a reachable broker events are dropped.
func openPublisher(cfg *config.AppConfig, log *logging.Logger) events.Publisher {
	if cfg.NATS.URL == "" {
		return events.NopPublisher{}
	}
	p, err := events.NewNatsPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	if err != nil {
		log.Error("nats_connect_failed", err, map[string]any{"url": cfg.NATS.URL})
		return events.NopPublisher{}
	}
	return p
}
