package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-restaurant-ws/internal/handler"
	"go-restaurant-ws/internal/middleware"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/internal/service"
	"go-restaurant-ws/internal/ws"
	"go-restaurant-ws/pkg/database"

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
	db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Restaurant{}, &model.Table{}, &model.Reservation{},
		&model.Supplier{}, &model.InventoryItem{}, &model.StockTransaction{},
		&model.Menu{}, &model.MenuItem{},
		&model.Order{}, &model.OrderItem{},
		&model.Notification{},
	)

	// 3. Seed default roles and admin user
	seedRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	restaurantRepo := repository.NewRestaurantRepo(db)
	tableRepo := repository.NewTableRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	stockTxRepo := repository.NewStockTransactionRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	authService := service.NewAuthService(userRepo, roleRepo, wsHub)
	userService := service.NewUserService(userRepo, roleRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo)
	tableService := service.NewTableService(tableRepo, restaurantRepo, reservationRepo)
	reservationService := service.NewReservationService(db, reservationRepo, tableRepo, restaurantRepo, notificationRepo, wsHub)
	inventoryService := service.NewInventoryService(db, inventoryRepo, stockTxRepo, supplierRepo, restaurantRepo, notificationRepo, wsHub)
	supplierService := service.NewSupplierService(supplierRepo)
	menuService := service.NewMenuService(menuRepo, restaurantRepo)
	orderService := service.NewOrderService(db, orderRepo, menuRepo, restaurantRepo, wsHub)
	notificationService := service.NewNotificationService(notificationRepo)
	reportService := service.NewReportService(inventoryRepo, stockTxRepo, reservationRepo, restaurantRepo)
	reminderService := service.NewReminderService(restaurantRepo, inventoryRepo, notificationRepo, wsHub, os.Getenv("REMINDER_SCHEDULE"))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	tableHandler := handler.NewTableHandler(tableService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	reportHandler := handler.NewReportHandler(reportService)

	if err := reminderService.Start(); err != nil {
		log.Printf("Warning: reminder sweep not started: %v", err)
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Restaurant Service v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// Browsing restaurants and menus requires no account
	api.Get("/restaurants", restaurantHandler.List)
	api.Get("/restaurants/:id", restaurantHandler.Get)
	api.Get("/restaurants/:id/menus", menuHandler.ListByRestaurant)
	api.Get("/menus/:id", menuHandler.Get)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Restaurant management
	protected.Post("/restaurants", middleware.RequireRole(model.RoleAdmin), restaurantHandler.Create)
	protected.Put("/restaurants/:id", restaurantHandler.Update)

	// Tables
	protected.Get("/restaurants/:id/tables", tableHandler.ListByRestaurant)
	protected.Get("/tables/:id", tableHandler.Get)
	protected.Post("/tables", tableHandler.Create)
	protected.Put("/tables/:id", tableHandler.Update)
	protected.Delete("/tables/:id", tableHandler.Delete)

	// Reservations
	protected.Get("/restaurants/:id/availability", reservationHandler.Availability)
	protected.Get("/restaurants/:id/reservations", reservationHandler.ListByRestaurant)
	protected.Get("/reservations", reservationHandler.ListMine)
	protected.Get("/reservations/:id", reservationHandler.Get)
	protected.Post("/reservations", reservationHandler.Create)
	protected.Put("/reservations/:id", reservationHandler.Update)
	protected.Patch("/reservations/:id/status", reservationHandler.UpdateStatus)
	protected.Post("/reservations/:id/cancel", reservationHandler.Cancel)

	// Inventory
	protected.Get("/restaurants/:id/inventory", inventoryHandler.ListItems)
	protected.Get("/inventory/:id", inventoryHandler.GetItem)
	protected.Post("/inventory", inventoryHandler.CreateItem)
	protected.Put("/inventory/:id", inventoryHandler.UpdateItem)
	protected.Get("/inventory/:id/transactions", inventoryHandler.ListTransactions)
	protected.Post("/inventory/:id/transactions", inventoryHandler.Transact)
	protected.Post("/inventory/:id/adjust", inventoryHandler.Adjust)
	protected.Post("/inventory/transfer", inventoryHandler.Transfer)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.List)
	protected.Get("/suppliers/:id", supplierHandler.Get)
	protected.Post("/suppliers", supplierHandler.Create)
	protected.Put("/suppliers/:id", supplierHandler.Update)
	protected.Delete("/suppliers/:id", supplierHandler.Delete)

	// Menus
	protected.Post("/menus", menuHandler.Create)
	protected.Put("/menus/:id", menuHandler.Update)
	protected.Delete("/menus/:id", menuHandler.Delete)
	protected.Post("/menus/:id/items", menuHandler.AddItem)
	protected.Put("/menu-items/:id", menuHandler.UpdateItem)
	protected.Delete("/menu-items/:id", menuHandler.DeleteItem)

	// Orders
	protected.Get("/restaurants/:id/orders", orderHandler.ListByRestaurant)
	protected.Get("/orders", orderHandler.ListMine)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Post("/orders", orderHandler.Create)
	protected.Patch("/orders/:id/status", orderHandler.UpdateStatus)

	// Notifications
	protected.Get("/notifications", notificationHandler.List)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Post("/notifications/read-all", notificationHandler.MarkAllRead)

	// Reports
	protected.Get("/restaurants/:id/dashboard", reportHandler.Dashboard)
	protected.Get("/restaurants/:id/reports/low-stock", reportHandler.LowStock)
	protected.Get("/restaurants/:id/reports/expiring", reportHandler.ExpiringSoon)
	protected.Get("/restaurants/:id/reports/valuation", reportHandler.Valuation)
	protected.Get("/restaurants/:id/reports/stock-movement", reportHandler.StockMovement)

	// Users
	protected.Get("/users", userHandler.List)
	protected.Get("/users/:id", userHandler.Get)
	protected.Post("/users", userHandler.Create)
	protected.Put("/users/:id", userHandler.Update)
	protected.Delete("/users/:id", userHandler.Delete)
	protected.Get("/restaurants/:id/users", userHandler.ListByRestaurant)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	reminderService.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedRolesAndAdmin creates the default roles and admin account if they don't
// exist. Retried a few times so a slow database at boot doesn't leave the
// service without roles.
func seedRolesAndAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		if err = roleRepo.SeedDefaults(); err == nil {
			break
		}
		log.Printf("Warning: failed to seed roles (attempt %d): %v", attempt, err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		log.Fatal("Could not seed default roles, giving up")
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.Printf("Warning: admin role missing, skipping admin seed: %v", err)
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:    email,
		FullName: "Platform Administrator",
		RoleID:   &adminRole.ID,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
