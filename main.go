package main

import (
	"Pasikuthu/cmd/config"
	migration "Pasikuthu/cmd/database/migrate"
	"Pasikuthu/internal/utils"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := utils.LoadConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown failed: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
