package app

import (
	"database/sql"
	"fmt"
	"log"

	"ardhi/internal/config"
	"ardhi/internal/handlers"
	"ardhi/internal/pdf"
	"ardhi/internal/repositories"
	"ardhi/internal/routes"
	"ardhi/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	_ "ardhi/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	landRepo := repositories.NewLandRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Auth.JWTSecret))
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, emailService, authService)
	resetService := services.NewPasswordResetService(userRepo, emailService, authService)

	brochureGen := pdf.NewBrochureGenerator(cfg.Files.RootDir)
	landService := services.NewLandService(landRepo, userRepo, brochureGen)
	favoriteService := services.NewFavoriteService(favoriteRepo, landRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, resetService)
	landHandler := handlers.NewLandHandler(landService, cfg.Files.RootDir)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// загруженные файлы отдаются как статика, как в оригинале
	router.Static("/uploads", cfg.Files.RootDir)

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Роуты (JWT/RBAC — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		authHandler,
		landHandler,
		favoriteHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
