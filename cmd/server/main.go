package main

import (
	"fmt"
	"log"
	"net/http"

	"childrens-bookshop/internal/config"
	"childrens-bookshop/internal/database"
	"childrens-bookshop/internal/handlers"
	"childrens-bookshop/internal/middleware"
	"childrens-bookshop/internal/repositories"
	"childrens-bookshop/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Run pending migrations on startup
	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create session store carrying the cart token and CSRF token
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)
	csrfMiddleware := middleware.NewCSRFMiddleware(sessionStore)

	// Initialize repositories
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	bookRepo := repositories.NewBookRepository(db.DB)
	promotionRepo := repositories.NewPromotionRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)

	// Initialize storage and image services (R2 with local fallback)
	storageFactory := services.NewStorageFactory(cfg)
	imageService := storageFactory.CreateImageService()

	// Initialize services
	catalogService := services.NewCatalogService(bookRepo, categoryRepo, imageService)
	cartService := services.NewCartService(cartRepo, bookRepo)
	promotionService := services.NewPromotionService(promotionRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, bookRepo)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(catalogService, promotionService)
	cartHandler := handlers.NewCartHandler(cartService, orderService)
	adminHandler := handlers.NewAdminHandler(catalogService, promotionService, orderService)

	// Initialize router
	r := chi.NewRouter()

	// Basic middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static/"))))

	// Health check
	r.Get("/health", publicHandler.HealthCheck)

	// Storefront routes with sessions and CSRF protection
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.EnsureCartToken)
		r.Use(csrfMiddleware.EnsureCSRFToken)
		r.Use(csrfMiddleware.CSRFProtection)

		r.Get("/", publicHandler.HomePage)
		r.Get("/books", publicHandler.BooksPage)
		r.Get("/books/{slug}", publicHandler.BookDetailPage)
		r.Get("/categories", publicHandler.CategoriesPage)
		r.Get("/promotions/{kind}/countdown", publicHandler.PromotionCountdown)

		r.Get("/cart", cartHandler.ViewCart)
		r.Post("/cart/add", cartHandler.AddToCart)
		r.Post("/cart/change", cartHandler.ChangeQuantity)
		r.Post("/cart/update", cartHandler.UpdateCartItem)
		r.Post("/cart/remove", cartHandler.RemoveFromCart)
		r.Post("/cart/clear", cartHandler.ClearCart)

		r.Get("/checkout", cartHandler.CheckoutPage)
		r.Post("/checkout", cartHandler.ProcessCheckout)
		r.Get("/orders/{number}/confirmation", cartHandler.OrderConfirmation)
	})

	// Token-guarded admin API
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.Admin.Token))

		r.Post("/categories", adminHandler.CreateCategory)
		r.Put("/categories/{id}", adminHandler.UpdateCategory)
		r.Delete("/categories/{id}", adminHandler.DeleteCategory)

		r.Post("/books", adminHandler.CreateBook)
		r.Put("/books/{id}", adminHandler.UpdateBook)
		r.Delete("/books/{id}", adminHandler.DeleteBook)
		r.Post("/books/{id}/cover", adminHandler.UploadBookCover)

		r.Get("/promotions", adminHandler.ListPromotions)
		r.Post("/promotions", adminHandler.CreatePromotion)
		r.Delete("/promotions/{id}", adminHandler.DeletePromotion)

		r.Get("/orders", adminHandler.ListOrders)
		r.Put("/orders/{id}/status", adminHandler.UpdateOrderStatus)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
