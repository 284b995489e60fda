package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-skystore/internal/config"
	"go-skystore/internal/handler"
	"go-skystore/internal/middleware"
	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/internal/service"
	"go-skystore/internal/validation"
	"go-skystore/internal/ws"
	"go-skystore/pkg/cache"
	"go-skystore/pkg/database"
	"go-skystore/pkg/mailer"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Article{},
		&model.ContactsData{}, &model.Feedback{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed privileges, roles, admin user and reference data
	seedDefaults(db, cfg)

	// 4. Shared collaborators
	listingCache := cache.New(cfg.Catalog.ListingCacheTTL)
	blocklist, err := validation.NewWordBlocklist(cfg.Catalog.ForbiddenWords)
	if err != nil {
		log.Fatal("Invalid forbidden word list: ", err)
	}
	smtpMailer := mailer.NewSMTP(cfg.Mail)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	articleRepo := repository.NewArticleRepo(db)
	contactsRepo := repository.NewContactsRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, listingCache, blocklist, cfg.Catalog, wsHub)
	blogService := service.NewBlogService(articleRepo, blocklist, cfg.Catalog, wsHub)
	contactService := service.NewContactService(contactsRepo, feedbackRepo)
	authService := service.NewAuthService(userRepo, smtpMailer)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)
	dashService := service.NewDashboardService(productRepo, articleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	blogHandler := handler.NewBlogHandler(blogService)
	contactHandler := handler.NewContactHandler(contactService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Skystore API v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth(userRepo)

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/logout", requireAuth, authHandler.Logout)

	// Storefront (unpublished listing registered before :id so the literal wins)
	api.Get("/products/unpublished", requireAuth,
		middleware.RequirePrivilege(model.PrivManageProductPublication), catalogHandler.ListUnpublished)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/categories", catalogHandler.ListCategories)

	// Blog
	api.Get("/articles/unpublished", requireAuth,
		middleware.RequirePrivilege(model.PrivManageArticlePublication), blogHandler.ListUnpublished)
	api.Get("/articles", blogHandler.ListArticles)
	api.Get("/articles/:id", blogHandler.GetArticle)

	// Contacts
	api.Get("/contacts", contactHandler.GetContacts)
	api.Post("/contacts/feedback", contactHandler.SubmitFeedback)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Account
	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)

	// Products (ownership and moderation checks live in the service layer)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)
	protected.Post("/products/:id/publication", catalogHandler.TogglePublication)

	// Articles
	protected.Post("/articles", blogHandler.CreateArticle)
	protected.Put("/articles/:id", blogHandler.UpdateArticle)
	protected.Delete("/articles/:id", blogHandler.DeleteArticle)
	protected.Post("/articles/:id/publication", blogHandler.TogglePublication)

	// Category administration
	protected.Post("/categories", middleware.RequirePrivilege(model.PrivManageCategory), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege(model.PrivManageCategory), catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege(model.PrivManageCategory), catalogHandler.DeleteCategory)

	// Moderation dashboard and feedback review
	protected.Get("/dashboard/moderation", middleware.RequirePrivilege(model.PrivViewDashboard), dashHandler.GetModerationStats)
	protected.Get("/contacts/feedback", middleware.RequirePrivilege(model.PrivViewDashboard), contactHandler.ListFeedback)

	// User management
	protected.Get("/users", middleware.RequirePrivilege(model.PrivViewUser), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege(model.PrivViewUser), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege(model.PrivCreateUser), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege(model.PrivUpdateUser), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege(model.PrivDeleteUser), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege(model.PrivUpdateUserPrivilege), userHandler.UpdateUserPrivileges)

	// Privileges listing
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket route for moderation events
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

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	listingCache.Close()

	log.Println("Server exited")
}

// seedDefaults creates default privileges, roles, the bootstrap admin user,
// the contacts reference record and default categories if they don't exist
func seedDefaults(db *gorm.DB, cfg *config.Config) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	contactsRepo := repository.NewContactsRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets all privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("ADMIN role assigned all privileges")
	}

	// PRODUCT_MODERATOR gets the moderation subset
	moderatorRole, err := roleRepo.FindByCode(model.RoleProductModerator)
	if err == nil && len(moderatorRole.Privileges) == 0 {
		moderatorPrivileges, err := privilegeRepo.FindByCodes(model.ModeratorPrivilegeCodes)
		if err == nil {
			db.Model(&moderatorRole).Association("Privileges").Replace(moderatorPrivileges)
			log.Println("PRODUCT_MODERATOR role assigned moderation privileges")
		}
	}

	// Bootstrap admin user
	if _, err := userRepo.FindByEmail(cfg.Admin.Email); err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       cfg.Admin.Email,
			FirstName:   "Admin",
			RoleID:      &adminRole.ID,
			IsStaff:     true,
			IsSuperuser: true,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		if err := admin.SetPassword(cfg.Admin.Password); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s (ADMIN)", cfg.Admin.Email)
		}
	}

	if err := contactsRepo.Seed(&model.ContactsData{
		Country: "Russia",
		TaxID:   "7707083893",
		Address: "Moscow, Skystore HQ",
	}); err != nil {
		log.Printf("Warning: Failed to seed contacts data: %v", err)
	}

	if err := categoryRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}
}
