package api

import (
	"log"

	"github.com/AnnaHort/phonebook-auth/config"
	"github.com/AnnaHort/phonebook-auth/infra/queue"
	"github.com/AnnaHort/phonebook-auth/internal/api/rest/handlers"
	"github.com/AnnaHort/phonebook-auth/internal/api/rest/middleware"
	"github.com/AnnaHort/phonebook-auth/internal/domain"
	"github.com/AnnaHort/phonebook-auth/internal/helper"
	"github.com/AnnaHort/phonebook-auth/internal/interfaces"
	"github.com/AnnaHort/phonebook-auth/internal/repository"
	"github.com/AnnaHort/phonebook-auth/internal/services"
	"github.com/AnnaHort/phonebook-auth/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewApp wires middleware, routes and the health endpoint onto a Fiber app.
func NewApp(cfg config.Config, userSvc services.UserService, up interfaces.Uploader) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, OPTIONS",
		AllowCredentials: true,
	}))

	authMW := middleware.AuthMiddleware(userSvc)
	identityMW := middleware.IdentityMiddleware(userSvc)

	userHandler := handlers.NewUserHandler(userSvc)
	userHandler.SetupRoutes(app, authMW, identityMW)

	avatarHandler := handlers.NewAvatarHandler(userSvc, up)
	avatarHandler.SetupRoutes(app, authMW)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

// migrate runs AutoMigrate under a Postgres advisory lock. Lock, migrate and
// unlock all happen on the same pooled connection, and the lock is released
// before the caller goes on to serve traffic.
func migrate(db *gorm.DB) error {
	const migrateLockID int64 = 20260411

	return db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return err
		}
		defer func() {
			_ = conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()

		return conn.AutoMigrate(&domain.User{})
	})
}

func StartServer(cfg config.Config) {
	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := migrate(db); err != nil {
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

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.JWTSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)

	// ---------- Service ----------
	userSvc := services.NewUserService(userRepo, kafkaProducer, authHelper)

	// ---------- App ----------
	app := NewApp(cfg, userSvc, up)

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
