package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"thescent/internal/config"
	"thescent/internal/handlers"
	"thescent/internal/middleware"
	"thescent/internal/pdf"
	"thescent/internal/repositories"
	"thescent/internal/routes"
	"thescent/internal/services"
	"thescent/migrations"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type repos struct {
	users      repositories.UserRepository
	sessions   repositories.SessionRepository
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	scents     repositories.ScentRepository
	carts      repositories.CartRepository
	wishlists  repositories.WishlistRepository
	reviews    repositories.ReviewRepository
	addresses  repositories.AddressRepository
	orders     repositories.OrderRepository
	engagement repositories.EngagementRepository
}

func buildRepos(cfg *config.Config) (*repos, func(), error) {
	if cfg.Storage.Driver == "memory" {
		log.Printf("[app] storage driver: memory")
		scents := repositories.NewMemoryScentRepository()
		return &repos{
			users:      repositories.NewMemoryUserRepository(),
			sessions:   repositories.NewMemorySessionRepository(),
			categories: repositories.NewMemoryCategoryRepository(),
			products:   repositories.NewMemoryProductRepository(scents),
			scents:     scents,
			carts:      repositories.NewMemoryCartRepository(),
			wishlists:  repositories.NewMemoryWishlistRepository(),
			reviews:    repositories.NewMemoryReviewRepository(),
			addresses:  repositories.NewMemoryAddressRepository(),
			orders:     repositories.NewMemoryOrderRepository(),
			engagement: repositories.NewMemoryEngagementRepository(),
		}, func() {}, nil
	}

	log.Printf("[app] storage driver: postgres")
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	closer := func() {
		if err := db.Close(); err != nil {
			log.Printf("[app] closing database: %v", err)
		}
	}
	return &repos{
		users:      repositories.NewUserRepository(db),
		sessions:   repositories.NewSessionRepository(db),
		categories: repositories.NewCategoryRepository(db),
		products:   repositories.NewProductRepository(db),
		scents:     repositories.NewScentRepository(db),
		carts:      repositories.NewCartRepository(db),
		wishlists:  repositories.NewWishlistRepository(db),
		reviews:    repositories.NewReviewRepository(db),
		addresses:  repositories.NewAddressRepository(db),
		orders:     repositories.NewOrderRepository(db),
		engagement: repositories.NewEngagementRepository(db),
	}, closer, nil
}

func Run() {
	cfg := config.LoadConfig()

	r, closeRepos, err := buildRepos(cfg)
	if err != nil {
		log.Fatal("storage init: ", err)
	}
	defer closeRepos()

	// === Services ===
	var emailService services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	notifier, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.DryRun)
	if err != nil {
		log.Fatal("telegram init: ", err)
	}

	authService := services.NewAuthService(r.users)
	sessionService := services.NewSessionService(r.sessions, cfg.SessionTTL())
	catalogService := services.NewCatalogService(r.categories, r.products, r.scents)
	cartService := services.NewCartService(r.carts, r.products)
	wishlistService := services.NewWishlistService(r.wishlists, r.products)
	reviewService := services.NewReviewService(r.reviews, r.products)
	addressService := services.NewAddressService(r.addresses)
	orderService := services.NewOrderService(r.orders, r.carts, r.products, r.addresses, r.users, emailService, notifier)
	engagementService := services.NewEngagementService(r.engagement, notifier)

	invoiceGen := pdf.NewInvoiceGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, sessionService, emailService, cfg.Session.CookieSecure)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService, authService, invoiceGen)
	engagementHandler := handlers.NewEngagementHandler(engagementService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(middleware.Session(sessionService))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		catalogHandler,
		cartHandler,
		wishlistHandler,
		reviewHandler,
		addressHandler,
		orderHandler,
		engagementHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			// Echo the origin instead of "*" so the session cookie
			// survives cross-origin requests with credentials.
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
