package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/database"
	"github.com/qs3c/salon_go_server/internal/pkg/email"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/worker"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	notifications := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	mailer := email.NewService(&cfg.Email)
	processor := worker.NewProcessor(mailer, notifications, worker.DefaultMaxAttempts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	pending, err := notifications.Length(ctx)
	if err != nil {
		log.Printf("Warning: failed to read queue length: %v", err)
	}
	log.Printf("Worker started on %s, max workers: %d, pending: %d", notifications.Name(), cfg.Queue.MaxWorkers, pending)

	worker.NewPool(notifications, processor, cfg.Queue.MaxWorkers).Run(ctx)

	log.Println("Worker shutdown complete")
}
