package config

import (
	"PantryPal-Backend/internal/api/handlers"
	"PantryPal-Backend/internal/api/routes"
	"PantryPal-Backend/internal/middleware"
	"PantryPal-Backend/internal/utils"
	"PantryPal-Backend/internal/utils/storage"
	"PantryPal-Backend/pkg/jwt"
	"PantryPal-Backend/pkg/pantry"
	"PantryPal-Backend/pkg/telegram"
	"PantryPal-Backend/pkg/user"
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
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	var viewCache pantry.ViewCache
	if redisAddr := utils.GetConfig("REDIS_ADDR"); redisAddr != "" {
		viewCache, err = pantry.NewRedisViewCache(redisAddr)
		if err != nil {
			log.Fatalf("error connecting to redis: %v", err)
		}
	} else {
		viewCache = pantry.NewNoopViewCache()
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	verifier := telegram.NewVerifier(utils.GetConfig("BOT_TOKEN"), 24*time.Hour)
	userService := user.NewUserService(userRepository, jwtService, verifier)
	pantryService := pantry.NewPantryService(pantryRepository, viewCache, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PantryHandler: pantryHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
