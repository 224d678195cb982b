package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/casalivre/casalivre-backend/internal/clients/gotenberg"
	redisclient "github.com/casalivre/casalivre-backend/internal/clients/redis"
	"github.com/casalivre/casalivre-backend/internal/db"
	"github.com/casalivre/casalivre-backend/internal/handlers"
	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/middleware"
	"github.com/casalivre/casalivre-backend/internal/observability"
	"github.com/casalivre/casalivre-backend/internal/repos"
	"github.com/casalivre/casalivre-backend/internal/server"
	"github.com/casalivre/casalivre-backend/internal/services"
	"github.com/casalivre/casalivre-backend/internal/templates"
	"github.com/casalivre/casalivre-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing (env-gated via OTEL_ENABLED)
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "casalivre-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Templates
	log.Info("Loading template registry from main...")
	registry, err := templates.New()
	if err != nil {
		log.Error("Could not load template registry", "error", err)
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	documentRepo := repos.NewDocumentRepo(thePG, log)
	documentSignatureRepo := repos.NewDocumentSignatureRepo(thePG, log)
	documentCounterRepo := repos.NewDocumentCounterRepo(thePG, log)
	contratoRepo := repos.NewContratoRepo(thePG, log)
	imovelRepo := repos.NewImovelRepo(thePG, log)
	locatarioRepo := repos.NewLocatarioRepo(thePG, log)
	locadorRepo := repos.NewLocadorRepo(thePG, log)
	fiadorRepo := repos.NewFiadorRepo(thePG, log)
	parcelaRepo := repos.NewParcelaRepo(thePG, log)

	// Clients
	log.Info("Setting up clients from main...")
	pdfClient, err := gotenberg.NewClient(log)
	if err != nil {
		log.Error("Could not init Gotenberg client", "error", err)
		os.Exit(1)
	}
	notifier, err := redisclient.NewSignatureNotifier(log)
	if err != nil {
		log.Warn("Could not init signature notifier, notifications disabled", "error", err)
		notifier = nil
	}
	if notifier != nil {
		defer notifier.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	dataFetchService := services.NewDataFetchService(log, contratoRepo, imovelRepo, locatarioRepo, locadorRepo, fiadorRepo, parcelaRepo)
	documentService := services.NewDocumentService(
		thePG,
		log,
		registry,
		dataFetchService,
		documentRepo,
		documentSignatureRepo,
		documentCounterRepo,
		notifier,
		pdfClient,
	)

	// Handlers
	log.Info("Setting up handlers from main...")
	documentHandler := handlers.NewDocumentHandler(documentService)
	templateHandler := handlers.NewTemplateHandler(registry, documentService)

	// Middleware
	log.Info("Setting up middleware from main...")
	requestLogMiddleware := middleware.NewRequestLogMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:          "casalivre-backend",
		RequestLogMiddleware: requestLogMiddleware,
		DocumentHandler:      documentHandler,
		TemplateHandler:      templateHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
