package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/colourful-jobs/platform-backend/internal/config"
	"github.com/colourful-jobs/platform-backend/internal/db"
	"github.com/colourful-jobs/platform-backend/internal/handlers"
	"github.com/colourful-jobs/platform-backend/internal/middleware"
	"github.com/colourful-jobs/platform-backend/internal/models"
	"github.com/colourful-jobs/platform-backend/internal/notify"
	"github.com/colourful-jobs/platform-backend/internal/services/credits"
	"github.com/colourful-jobs/platform-backend/internal/services/kvk"
	"github.com/colourful-jobs/platform-backend/internal/services/mail"
	"github.com/colourful-jobs/platform-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := notify.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := notify.NewHub()
	go hub.Run()
	go notify.Subscribe(context.Background(), rdb, hub)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Employer{},
		&models.JoinRequest{},
		&models.Vacancy{},
		&models.Product{},
		&models.CreditTransaction{},
		&models.Media{},
		&models.Lookup{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Static("/uploads", cfg.UploadDir)

	creditsSvc := credits.NewService(gdb)
	kvkSvc := kvk.NewService(cfg.KVKAPIKey, cfg.KVKBaseURL, rdb)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	accountH := handlers.NewAccountHandler(gdb, creditsSvc)
	onboardingH := handlers.NewOnboardingHandler(gdb)
	vacancyH := handlers.NewVacancyHandler(gdb, creditsSvc, rdb, hub, cfg.FrontendBaseURL)
	productH := handlers.NewProductHandler(gdb, rdb)
	lookupH := handlers.NewLookupHandler(gdb, rdb)
	mediaH := handlers.NewMediaHandler(gdb, cfg.UploadDir, cfg.PublicBaseURL)
	kvkH := handlers.NewKVKHandler(gdb, kvkSvc, mail.LogMailer{}, cfg.FrontendBaseURL, cfg.JWTSecret, cfg.JWTExpiresMin)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/products", productH.List)
	api.Get("/products/:id", productH.Get)
	api.Get("/lookups", lookupH.List)

	// protected (JWT cookie)
	auth := []fiber.Handler{
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	}
	protected := api.Group("/", auth...)

	protected.Get("/account", accountH.Get)
	protected.Get("/account/credits", accountH.ListCreditTransactions)

	onboardingH.Routes(api, auth...)
	vacancyH.Routes(api, auth...)
	mediaH.Routes(api, auth...)
	kvkH.Routes(api, auth...)

	// admin only
	adminChain := append(append([]fiber.Handler{}, auth...), middleware.RequireRoles("admin"))
	vacancyH.AdminRoutes(api, adminChain...)

	protected.Get("/admin/employers",
		middleware.RequireRoles("admin"),
		func(c *fiber.Ctx) error {
			var employers []models.Employer
			if err := gdb.Order("created_at DESC").Limit(200).Find(&employers).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "failed to load employers",
				})
			}
			return c.JSON(fiber.Map{"success": true, "data": employers})
		},
	)

	// websocket: auth via cookie or ?token= before the upgrade
	app.Use("/ws/notifications", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = c.Cookies("cj_token")
		}
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		token, err := jwt.ParseWithClaims(tokenStr, &utils.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.ErrUnauthorized
		}
		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		var u models.User
		if err := gdb.First(&u, "id = ?", claims.UserID).Error; err != nil || u.EmployerID == nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("employerId", *u.EmployerID)
		return c.Next()
	})
	app.Get("/ws/notifications", websocket.New(notify.Handler(hub)))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
