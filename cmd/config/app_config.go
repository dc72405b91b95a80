package config

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/internal/api/handlers"
	"Nutripedia-Backend/internal/api/routes"
	"Nutripedia-Backend/internal/logging"
	"Nutripedia-Backend/internal/middleware"
	"Nutripedia-Backend/internal/utils"
	"Nutripedia-Backend/pkg/cache"
	"Nutripedia-Backend/pkg/generator"
	"Nutripedia-Backend/pkg/item"
)

func NewApp(itemRepository item.ItemRepository) (*fiber.App, error) {
	utils.InitValidator()
	logging.Init()

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		// Outermost handler: anything a route did not map itself becomes a
		// generic 500 with no internal detail leaked.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": domain.MessageInternalServerError})
		},
	})
	middlewares := middleware.NewMiddleware()

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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Service
	itemCache := cache.NewItemCache(cache.DefaultTTL)
	generatorService := generator.NewGeminiGenerator()
	itemService := item.NewItemService(itemRepository, generatorService, itemCache)

	// Handler
	itemHandler := handlers.NewItemHandler(itemService)

	// routes
	routesConfig := routes.Config{
		App:         app,
		ItemHandler: itemHandler,
		Middleware:  middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
