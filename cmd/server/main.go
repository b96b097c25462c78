package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"practicum-service/internal/api"
	"practicum-service/internal/events"
	"practicum-service/internal/repository"
	"practicum-service/internal/service"
	"practicum-service/internal/tracing"
	_ "practicum-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("practicum-service")

	shutdownTracer, err := tracing.InitTracerProvider("practicum-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	sessionRepo := repository.NewPostgresSessionRepository(db)
	clientRepo := repository.NewPostgresClientRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	policy := service.TransitionPolicy{
		AllowReopen: os.Getenv("STATUS_REOPEN_ALLOWED") == "true",
	}

	sessionService := service.NewSessionService(sessionRepo, clientRepo, eventPublisher, policy)
	clientService := service.NewClientService(clientRepo, sessionRepo, eventPublisher)
	profileService := service.NewProfileService(profileRepo)
	scheduleService := service.NewScheduleService(sessionRepo, clientRepo, profileRepo)

	watcher, err := events.NewWatcher(natsURL, sessionRepo, clientRepo)
	if err != nil {
		log.Fatalf("Failed to start change watcher: %v", err)
	}

	sessionHandler := api.NewSessionHandler(sessionService)
	clientHandler := api.NewClientHandler(clientService)
	profileHandler := api.NewProfileHandler(profileService)
	scheduleHandler := api.NewScheduleHandler(scheduleService)
	streamHandler := api.NewStreamHandler(watcher)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "practicum-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")
	v1.Use(api.AuthMiddleware())

	v1.Get("/schedule", scheduleHandler.GetSchedule)
	v1.Get("/schedule/stream", streamHandler.StreamSchedule)
	v1.Get("/reports", scheduleHandler.GetReport)
	v1.Get("/groups", scheduleHandler.GetGroups)

	sessionRoutes := v1.Group("/sessions")
	sessionRoutes.Get("/", sessionHandler.ListSessions)
	sessionRoutes.Post("/", sessionHandler.CreateSession)
	sessionRoutes.Patch("/:id", sessionHandler.UpdateSession)
	sessionRoutes.Post("/:id/complete", sessionHandler.CompleteSession)
	sessionRoutes.Post("/:id/reopen", sessionHandler.ReopenSession)
	sessionRoutes.Patch("/:id/indexed", sessionHandler.SetIndexed)
	sessionRoutes.Delete("/:id", sessionHandler.DeleteSession)

	clientRoutes := v1.Group("/clients")
	clientRoutes.Get("/", clientHandler.ListClients)
	clientRoutes.Post("/", clientHandler.CreateClient)
	clientRoutes.Patch("/:id", clientHandler.UpdateClient)
	clientRoutes.Delete("/:id", clientHandler.DeleteClient)

	v1.Get("/profile", profileHandler.GetProfile)
	v1.Put("/profile", profileHandler.UpdateProfile)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8004"
	}

	log.Printf("Listening practicum-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", databaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func databaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
