package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/api"
	"github.com/qs3c/salon_go_server/internal/api/handler"
	"github.com/qs3c/salon_go_server/internal/database"
	"github.com/qs3c/salon_go_server/internal/pkg/cache"
	"github.com/qs3c/salon_go_server/internal/pkg/cron"
	"github.com/qs3c/salon_go_server/internal/pkg/oss"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/pkg/ws"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/service"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database migrated")
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	catalog, err := plan.CatalogFromConfig(cfg.Plans)
	if err != nil {
		log.Fatalf("Invalid plans config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Schedule.DefaultTimezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using UTC", cfg.Schedule.DefaultTimezone)
		loc = time.UTC
	}

	// without OSS, report exports are returned in the response body
	var reportStorage service.ReportStorage
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err := oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			reportStorage = ossClient
			log.Println("OSS client initialized")
		}
	}

	statusCache := cache.NewStatusCache(rdb, time.Duration(cfg.Redis.StatusTTLSeconds)*time.Second)
	publisher := pubsub.NewPublisher(rdb)
	notifications := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)

	companyRepo := repository.NewCompanyRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	proRepo := repository.NewProfessionalRepository(db)
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	subscriptionService := service.NewSubscriptionService(subRepo, companyRepo, proRepo, catalog, statusCache, publisher, loc)
	financeService := service.NewFinanceService(txRepo, apptRepo, companyRepo, subscriptionService, publisher, loc)
	appointmentService := service.NewAppointmentService(apptRepo, clientRepo, proRepo, catalogRepo, companyRepo,
		subscriptionService, financeService, publisher, notifications, cfg.Schedule, loc)
	professionalService := service.NewProfessionalService(proRepo, subscriptionService, publisher)
	clientService := service.NewClientService(clientRepo, publisher)
	catalogService := service.NewCatalogService(catalogRepo, publisher)
	reportService := service.NewReportService(apptRepo, proRepo, companyRepo, financeService, subscriptionService, reportStorage, loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsHub := ws.NewHub()
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		if err := subscriber.Subscribe(ctx, wsHub.Relay()); err != nil && ctx.Err() == nil {
			log.Printf("Dashboard event relay stopped: %v", err)
		}
	}()
	log.Println("WebSocket relay started")

	resetter := cron.NewService(subscriptionService, cfg.Billing.ResetIntervalMinutes)
	resetter.Start()
	defer resetter.Stop()

	router := api.NewRouter(
		handler.NewSubscriptionHandler(subscriptionService),
		handler.NewAppointmentHandler(appointmentService, subscriptionService),
		handler.NewProfessionalHandler(professionalService),
		handler.NewClientHandler(clientService),
		handler.NewCatalogHandler(catalogService),
		handler.NewFinanceHandler(financeService),
		handler.NewReportHandler(reportService),
		handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret, cfg.CORS.AllowedOrigins),
		subscriptionService,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
