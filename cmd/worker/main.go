package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gobarber_backend/internal/email"
	"gobarber_backend/internal/queue"
	"gobarber_backend/platform/config"
	"gobarber_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting queue worker", "env", cfg.Env, "queue", cfg.QueueName, "concurrency", cfg.QueueConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSMTPSender(cfg)

	worker, err := queue.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize queue worker", "error", err)
		panic("failed to initialize queue worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("queue worker stopped")
}
