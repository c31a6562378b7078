package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.Product{}, &model.ProductVariant{}, &model.Customer{},
		&model.Sale{}, &model.SaleItem{}, &model.StockLog{},
		&model.Backorder{}, &model.Return{}, &model.Sample{},
		&model.Payment{}, &model.SequenceCounter{}, &model.User{},
	)

	// 3. Seed default shop owner
	seedOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	backorderRepo := repository.NewBackorderRepo(db)
	returnRepo := repository.NewReturnRepo(db)
	sampleRepo := repository.NewSampleRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	seqRepo := repository.NewSequenceRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(productRepo, stockLogRepo, db, wsHub)
	creditService := service.NewCreditService(customerRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, seqRepo, ledgerService, creditService, db)
	backorderService := service.NewBackorderService(backorderRepo, ledgerService, db)
	returnService := service.NewReturnService(returnRepo, seqRepo, ledgerService, creditService, db)
	sampleService := service.NewSampleService(sampleRepo, productRepo, ledgerService, db)
	paymentService := service.NewPaymentService(paymentRepo, creditService, db)
	dashboardService := service.NewDashboardService(customerRepo, backorderRepo, productRepo, sampleRepo)
	authService := service.NewAuthService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productRepo, ledgerService)
	customerHandler := handler.NewCustomerHandler(customerRepo, creditService)
	saleHandler := handler.NewSaleHandler(saleService)
	backorderHandler := handler.NewBackorderHandler(backorderService)
	returnHandler := handler.NewReturnHandler(returnService)
	sampleHandler := handler.NewSampleHandler(sampleService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product & stock routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Post("/variants", productHandler.CreateVariant)
	protected.Get("/variants/:id/stock", productHandler.GetStock)
	protected.Post("/variants/:id/stock", productHandler.AdjustStock)
	protected.Get("/variants/:id/stock-logs", productHandler.GetStockHistory)

	// Customer & credit routes
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/balances", customerHandler.GetBalances)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Get("/customers/:id/balance", customerHandler.GetBalance)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Sale routes
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/today-stats", saleHandler.GetTodayStats)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Post("/sales/:id/cancel", saleHandler.CancelSale)

	// Backorder routes
	protected.Get("/backorders", backorderHandler.GetBackorders)
	protected.Get("/backorders/stats", backorderHandler.GetStats)
	protected.Post("/backorders/:id/complete", backorderHandler.CompleteBackorder)
	protected.Post("/backorders/:id/cancel", backorderHandler.CancelBackorder)

	// Return routes
	protected.Get("/returns", returnHandler.GetReturns)
	protected.Post("/returns", returnHandler.CreateReturn)
	protected.Post("/returns/:id/complete", returnHandler.CompleteReturn)
	protected.Post("/returns/:id/cancel", returnHandler.CancelReturn)

	// Sample loan routes
	protected.Get("/samples", sampleHandler.GetSamples)
	protected.Post("/samples", sampleHandler.CreateSample)
	protected.Post("/samples/:id/return", sampleHandler.ReturnSample)
	protected.Post("/samples/:id/cancel", sampleHandler.CancelSample)

	// Payment routes
	protected.Get("/payments", paymentHandler.GetPayments)
	protected.Post("/payments", paymentHandler.CreatePayment)

	// Dashboard routes
	protected.Get("/dashboard/notifications", dashboardHandler.GetNotificationCounts)
	protected.Get("/dashboard/low-stock", dashboardHandler.GetLowStock)
	protected.Get("/dashboard/out-of-stock", dashboardHandler.GetOutOfStock)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedOwner creates the default shop owner account if none exists yet
func seedOwner(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("OWNER_EMAIL")
	if email == "" {
		email = "owner@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	owner := &model.User{
		Email:     email,
		ShopName:  "My Shop",
		OwnerName: "Shop Owner",
		IsActive:  true,
	}

	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}
	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create owner user: %v", err)
	} else {
		log.Printf("✅ Owner user created: %s", email)
	}
}
