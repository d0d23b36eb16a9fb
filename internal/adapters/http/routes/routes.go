package routes

import (
	"github.com/anietieasuquo/vending-machine/internal/adapters/http/handlers"
	"github.com/anietieasuquo/vending-machine/internal/adapters/http/middleware"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/config"
	"github.com/anietieasuquo/vending-machine/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup builds the dependency graph and configures all routes: first
// repositories, then services, then handlers, passing references down.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	machineRepo := repositories.NewMachineRepository(db)
	txManager := repositories.NewTransactionManager(db)

	// Services
	authService := services.NewAuthService(userRepo, roleRepo, cfg)
	userService := services.NewUserService(userRepo, roleRepo, machineRepo)
	productService := services.NewProductService(productRepo, userRepo)
	purchaseService := services.NewPurchaseService(txManager, purchaseRepo, userRepo, productRepo)
	roleService := services.NewRoleService(roleRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	roleHandler := handlers.NewRoleHandler(roleService)

	guard := middleware.NewPermissionGuard(productService)
	auth := middleware.AuthMiddleware(cfg)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	apiV1 := app.Group("/api/v1")

	// Auth
	apiV1.Post("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Users
	users := apiV1.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Post("/admin", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}}),
		userHandler.CreateAdmin)
	users.Get("/", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}, ReadOnly: true}),
		userHandler.ListUsers)
	users.Get("/:id", auth,
		guard.Permissions(middleware.PermissionsConfig{OnlyOwner: true, Entity: "user", ReadOnly: true}),
		userHandler.GetUser)
	users.Post("/:id/deposits", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"buyer"}, OnlyOwner: true, Entity: "user"}),
		userHandler.MakeDeposit)
	users.Post("/:id/deposits/reset", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"buyer"}, OnlyOwner: true, Entity: "user"}),
		userHandler.ResetDeposit)
	users.Patch("/:id/password", auth,
		guard.Permissions(middleware.PermissionsConfig{OnlyOwner: true, Entity: "user"}),
		userHandler.ChangePassword)
	users.Patch("/:id/roles", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}}),
		userHandler.UpdateRole)
	users.Delete("/:id", auth,
		guard.Permissions(middleware.PermissionsConfig{OnlyOwner: true, Entity: "user"}),
		userHandler.DeleteUser)

	// Products
	products := apiV1.Group("/products")
	products.Post("/", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"seller"}}),
		productHandler.CreateProduct)
	products.Get("/", auth, productHandler.ListProducts)
	products.Get("/:id", auth, productHandler.GetProduct)
	products.Put("/:id", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"seller"}, OnlyOwner: true, Entity: "product"}),
		productHandler.UpdateProduct)
	products.Delete("/:id", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"seller"}, OnlyOwner: true, Entity: "product"}),
		productHandler.DeleteProduct)
	products.Post("/:id/buy", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"buyer"}}),
		purchaseHandler.MakePurchase)
	products.Get("/:id/purchases", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"seller"}, OnlyOwner: true, Entity: "product", ReadOnly: true}),
		purchaseHandler.ListProductPurchases)

	// Purchases
	apiV1.Get("/purchases", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}, ReadOnly: true}),
		purchaseHandler.ListPurchases)

	// Roles
	roles := apiV1.Group("/roles")
	roles.Post("/", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}}),
		roleHandler.CreateRole)
	roles.Get("/", auth,
		guard.Permissions(middleware.PermissionsConfig{Roles: []string{"admin"}, ReadOnly: true}),
		roleHandler.ListRoles)
}
