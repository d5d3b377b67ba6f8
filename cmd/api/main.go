package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"majesty_backend/internal/controller"
	"majesty_backend/internal/gate"
	"majesty_backend/internal/middleware"
	"majesty_backend/internal/model"
	"majesty_backend/pkg/config"
	"majesty_backend/pkg/cron"
	"majesty_backend/pkg/database"
	"majesty_backend/pkg/email"
	"majesty_backend/pkg/seed"
	"majesty_backend/pkg/utils/jwt"
	"majesty_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/login", controller.Login)

	// Visitor session + inquiry gate
	api.Post("/session", controller.CreateVisitorSession)
	gateRoutes := api.Group("/gate")
	gateRoutes.Get("/", controller.GetGateState)
	gateRoutes.Post("/intercept", controller.InterceptInteraction)
	gateRoutes.Post("/dismiss", controller.DismissGate)

	// Public lead capture
	api.Post("/leads", controller.CreateLead)
	api.Get("/catalog", controller.GetCatalogOptions)

	// Public content
	api.Get("/brochures", controller.ListBrochures)
	api.Get("/gallery", controller.ListGalleryImages)
	api.Get("/settings/contact", controller.GetContactInfo)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Protected lead routes
	leads := protected.Group("/leads")
	leads.Get("/", controller.GetLeads)
	leads.Put("/:id/status", controller.UpdateLeadStatus)
	leads.Put("/:id/read", controller.MarkLeadAsRead)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)

	// Content management
	brochures := protected.Group("/brochures")
	brochures.Post("/", controller.CreateBrochure)
	brochures.Put("/:id", controller.UpdateBrochure)
	brochures.Delete("/:id", controller.DeleteBrochure)

	gallery := protected.Group("/gallery")
	gallery.Post("/", controller.UploadGalleryImage)
	gallery.Delete("/:id", controller.DeleteGalleryImage)

	// Settings routes
	protected.Put("/settings", controller.UpdateSettings)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("No Resend API key found, email notifications disabled")
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	if err := jwt.Init(cfg.JWT.Secret); err != nil {
		log.Fatal("JWT_SECRET is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Lead{},
		&model.Brochure{},
		&model.GalleryImage{},
		&model.SiteSettings{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedSiteSettings(database.GetDB())
	seed.SeedAdminUser(database.GetDB())

	if err := storage.InitStorage(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		PublicURL: cfg.Storage.PublicURL,
	}); err != nil {
		log.Fatal("Could not initialize storage:", err)
	}

	// The gate's submitted flag lives in Redis when available so it
	// survives reloads across instances; otherwise in process memory.
	var sessionStore gate.SessionStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		sessionStore = gate.NewRedisStore(client, cfg.Gate.SessionTTL)
		log.Println("Gate session store: redis")
	} else {
		sessionStore = gate.NewMemoryStore()
		log.Println("Gate session store: memory")
	}

	gateManager := gate.NewManager(sessionStore, gate.Config{
		PromptInterval: cfg.Gate.PromptInterval,
		SessionTTL:     cfg.Gate.SessionTTL,
	})

	controller.InitLeadController()
	controller.InitGateController(gateManager)
	cron.InitLeadStatsCron(email.GlobalEmailService)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
