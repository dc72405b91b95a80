package routes

import (
	"github.com/gofiber/fiber/v2"

	"Nutripedia-Backend/internal/api/handlers"
	"Nutripedia-Backend/internal/middleware"
)

type Config struct {
	App         *fiber.App
	ItemHandler handlers.ItemHandler
	Middleware  middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.RequestIDMiddleware())
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Items()
	c.GuestRoute()
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items")
	{
		items.Get("/lookup", c.ItemHandler.LookupItem)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
