package config

import (
	"Pasikuthu/internal/api/handlers"
	"Pasikuthu/internal/api/routes"
	"Pasikuthu/internal/middleware"
	"Pasikuthu/internal/utils"
	"Pasikuthu/internal/utils/mailing"
	"Pasikuthu/pkg/auth"
	"Pasikuthu/pkg/donation"
	"Pasikuthu/pkg/jwt"
	"Pasikuthu/pkg/normalize"
	"Pasikuthu/pkg/session"
	"Pasikuthu/pkg/validation"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	cities := normalize.CitySuggestions

	// Repository
	donationRepository := donation.NewDonationRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	authService := auth.NewAuthService(jwtService, mailer, validator, auth.Config{
		AppURL:       utils.GetConfig("APP_URL"),
		MagicLinkTTL: utils.GetDuration("MAGIC_LINK_TTL", 15*time.Minute),
		SessionTTL:   utils.GetDuration("SESSION_TTL", 24*time.Hour),
	})
	donationStore := donation.NewDonationStore(donationRepository)
	notice := donation.NewNotice(utils.GetDuration("NOTICE_TTL", 5*time.Second))
	donationValidator := validation.NewDonationValidator(validator, cities, utils.GetBool("CONTACT_REQUIRED"))
	donationService := donation.NewDonationService(donationRepository, donationStore, donationValidator, notice)

	lifecycle := session.NewLifecycle(authService, donationStore)
	if err := lifecycle.Start(context.Background()); err != nil {
		return nil, err
	}
	app.Hooks().OnShutdown(func() error {
		lifecycle.Close()
		notice.Stop()
		return nil
	})

	// Handler
	authHandler := handlers.NewAuthHandler(authService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator, cities)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AuthHandler:     authHandler,
		DonationHandler: donationHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		Sessions:        lifecycle,
	}
	routesConfig.Setup()
	return app, nil
}
