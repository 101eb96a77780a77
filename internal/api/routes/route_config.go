package routes

import (
	"PantryPal-Backend/internal/api/handlers"
	"PantryPal-Backend/internal/middleware"
	"PantryPal-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PantryHandler handlers.PantryHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Pantry()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/login", c.UserHandler.LoginWithTelegram)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	// Read views
	pantry.Get("/items", c.PantryHandler.ListFoodItems)
	pantry.Get("/items/count", c.PantryHandler.CountActiveItems)
	pantry.Get("/items/:id", c.PantryHandler.GetFoodItemDetails)
	pantry.Get("/vocabularies", c.PantryHandler.GetSuggestedVocabularies)

	// Mutations
	pantry.Post("/items", c.PantryHandler.AddFoodItem)
	pantry.Patch("/items/consume", c.PantryHandler.SetConsumed)
	pantry.Patch("/items/discard", c.PantryHandler.SetDiscarded)
	pantry.Patch("/items/fields", c.PantryHandler.UpdateFoodItemFields)
	pantry.Put("/items/details", c.PantryHandler.UpdateFullDetails)
	pantry.Patch("/items/batch", c.PantryHandler.UpdateManyFoodItems)

	// Extras
	pantry.Post("/items/photo", c.PantryHandler.UploadFoodItemPhoto)
	pantry.Post("/summary", c.PantryHandler.SendPantrySummary)
}
