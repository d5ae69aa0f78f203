package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/database"
	"github.com/qs3c/salon_go_server/internal/pkg/cron"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/service"
)

var (
	configPath = flag.String("config", "config.yaml", "config file path")
	dryRun     = flag.Bool("dry-run", true, "only list expired cycles, don't reset them")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	catalog, err := plan.CatalogFromConfig(cfg.Plans)
	if err != nil {
		log.Fatalf("Invalid plans config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Schedule.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}

	// no cache or publisher: a one-off run leaves cached statuses to expire on their TTL
	subs := service.NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewProfessionalRepository(db),
		catalog, nil, nil, loc,
	)

	ctx := context.Background()

	log.Println(strings.Repeat("=", 60))
	log.Println("Billing cycle reset")
	log.Println(strings.Repeat("=", 60))

	expired, err := subs.ExpiredCycles(ctx)
	if err != nil {
		log.Fatalf("Failed to list expired cycles: %v", err)
	}

	for _, sub := range expired {
		log.Printf("  - company %d (%s, %d used, due %s)",
			sub.CompanyID, sub.Plan, sub.UsedAppointments, sub.NextResetAt.Format(time.RFC3339))
	}
	log.Printf("Found %d expired cycles", len(expired))

	if *dryRun {
		log.Println("DRY RUN MODE - no cycle was reset")
		log.Println("Run with -dry-run=false to reset them")
		return
	}

	n, err := cron.NewService(subs, cfg.Billing.ResetIntervalMinutes).RunNow(ctx)
	if err != nil {
		log.Fatalf("Failed to reset cycles: %v", err)
	}
	log.Printf("Reset %d cycles", n)
}
