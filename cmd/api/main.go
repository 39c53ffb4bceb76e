package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskAdmin/internal/app"
	"taskAdmin/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("инициализация приложения: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("работа приложения: %v", err)
	}
}
