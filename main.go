package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/venomvision/venomvision-web/i18n"
	"github.com/venomvision/venomvision-web/routes"
	"github.com/venomvision/venomvision-web/services"
	"github.com/venomvision/venomvision-web/views"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5001"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "redis:6379"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// The backend client runs without a request deadline unless API_TIMEOUT
	// is set, matching the original client instantiation.
	var apiTimeout time.Duration
	if v := os.Getenv("API_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid API_TIMEOUT %q: %v", v, err)
		}
		apiTimeout = parsed
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
	} else {
		log.Printf("Redis connected: %s", redisAddr)
	}

	locales, err := i18n.NewStore()
	if err != nil {
		log.Fatalf("load locales: %v", err)
	}

	engine := views.NewEngine()
	if err := engine.Load(); err != nil {
		log.Fatalf("load templates: %v", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 engine,
	})

	routes.RegisterRoutes(app, &routes.Deps{
		I18n:     locales,
		Sessions: services.NewSessionStore(services.NewRedisStore(rdb)),
		Backend:  services.NewHTTPBackend(apiURL, apiTimeout),
		Redis:    rdb,
	})

	log.Printf("VenomVision web listening on :%s (api=%s)", port, apiURL)
	log.Fatal(app.Listen(":" + port))
}
