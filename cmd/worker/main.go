package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobdesk/internal/app"
	"jobdesk/internal/config"
	"jobdesk/internal/notification"
	"jobdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	if c.Redis == nil {
		log.Fatal("worker requires redis; no queue to consume from")
	}

	mailer := notification.NewMailer(cfg.SMTP, c.Logger)
	notifier := notification.NewNotifier(mailer, c.Logger)
	w := worker.New(c.Jobs, c.Applications, notifier, c.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopSweep, err := w.StartSweep(ctx, cfg.Worker.SweepSpec)
	if err != nil {
		log.Fatalf("failed to start sweep: %v", err)
	}
	defer stopSweep()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		c.Logger.Printf("[Worker] shutting down")
		cancel()
	}()

	c.Logger.Printf("[Worker] consuming %q with %d workers", cfg.Worker.QueueKey, cfg.Worker.Concurrency)
	c.Queue.Consume(ctx, cfg.Worker.Concurrency, w.Handle)
}
