package routes

import (
	"Pasikuthu/internal/api/handlers"
	"Pasikuthu/internal/middleware"
	"Pasikuthu/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	AuthHandler     handlers.AuthHandler
	DonationHandler handlers.DonationHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	Sessions        middleware.SessionSource
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Donations()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/cities", c.DonationHandler.GetCitySuggestions)
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/otp", c.AuthHandler.SendOtp)
		auth.Get("/verify", c.AuthHandler.VerifyOtp)
		auth.Post("/signout", c.Middleware.AuthMiddleware(c.JWTService, c.Sessions), c.AuthHandler.SignOut)
		auth.Get("/session", c.AuthHandler.GetSession)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService, c.Sessions))
	donations.Get("", c.DonationHandler.GetDonations)
	donations.Post("", c.DonationHandler.CreateDonation)
	donations.Post("/reload", c.DonationHandler.ReloadDonations)
	donations.Patch("/:id/quantity", c.DonationHandler.UpdateDonationQuantity)
	donations.Delete("/:id", c.DonationHandler.DeleteDonation)
}
