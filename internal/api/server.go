package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/purepath/account-service/config"
	"github.com/purepath/account-service/infra/queue"
	"github.com/purepath/account-service/internal/api/rest/handlers"
	"github.com/purepath/account-service/internal/domain"
	"github.com/purepath/account-service/internal/helper"
	"github.com/purepath/account-service/internal/repository"
	"github.com/purepath/account-service/internal/services"
	"github.com/purepath/account-service/internal/tokenstore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	tokens := tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	auth := helper.SetupAuth(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// ---------- Repository ----------
	userRepo := repository.NewUserRepository(db)

	// ---------- Service ----------
	challenge := services.NewChallengeEngine(userRepo, cfg.OTPLength, cfg.OTPTTL)
	accountSvc := services.NewAccountService(userRepo, kafkaProducer, auth, challenge, tokens)

	// ---------- Handler ----------
	accountHandler := handlers.NewAccountHandler(accountSvc, auth)
	accountHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
