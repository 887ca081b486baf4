package router

import (
	"time"

	"donmenu/internal/config"
	"donmenu/internal/handler"
	"donmenu/internal/middleware"
	"donmenu/internal/repository"
	"donmenu/internal/service"
	"donmenu/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ingredientSvc := service.NewIngredientService(ingredientRepo)
	recipeSvc := service.NewRecipeService(recipeRepo, ingredientRepo)
	menuSvc := service.NewMenuService(menuItemRepo, recipeRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, dispatcher)
	orderSvc := service.NewOrderService(orderRepo, menuItemRepo, caixaRepo)
	reportSvc := service.NewReportService(orderRepo, menuItemRepo, caixaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc, recipeRepo, cfg.RestaurantName, cfg.PDFStoragePath)
	menuItemsH := handler.NewMenuItemsHandler(menuSvc)
	publicMenuH := handler.NewPublicMenuHandler(menuSvc, rdb, cfg.RestaurantName, cfg.MenuCacheTTL)
	ordersH := handler.NewOrdersHandler(orderSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Cardápio público — no auth required
	r.GET("/v1/menu", publicMenuH.Get)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, admin — declared per-endpoint.
		// Writes to the cardápio drop the public menu cache on success.
		invalidate := handler.InvalidateMenuCache(rdb)

		// Insumos — staff can read, admin writes
		v1.GET("/ingredients", middleware.RequireRole("staff", "admin"), ingredientsH.List)
		v1.GET("/ingredients/:id", middleware.RequireRole("staff", "admin"), ingredientsH.Get)
		ingredients := v1.Group("/ingredients", middleware.RequireRole("admin"))
		{
			ingredients.POST("", ingredientsH.Create)
			ingredients.PUT("/:id", ingredientsH.Update)
			ingredients.DELETE("/:id", ingredientsH.Delete)
		}

		// Fichas técnicas
		v1.GET("/recipes", middleware.RequireRole("staff", "admin"), recipesH.List)
		v1.GET("/recipes/:id", middleware.RequireRole("staff", "admin"), recipesH.Get)
		v1.GET("/recipes/:id/pdf", middleware.RequireRole("staff", "admin"), recipesH.PDF)
		recipes := v1.Group("/recipes", middleware.RequireRole("admin"))
		{
			recipes.POST("", recipesH.Create)
			recipes.PUT("/:id", recipesH.Update)
			recipes.DELETE("/:id", recipesH.Delete)
			recipes.POST("/:id/recost", recipesH.Recost)
		}

		// Itens do cardápio
		v1.GET("/menu-items", middleware.RequireRole("staff", "admin"), menuItemsH.List)
		v1.GET("/menu-items/:id", middleware.RequireRole("staff", "admin"), menuItemsH.Get)
		menuItems := v1.Group("/menu-items", middleware.RequireRole("admin"), invalidate)
		{
			menuItems.POST("", menuItemsH.Create)
			menuItems.PUT("/:id", menuItemsH.Update)
			menuItems.DELETE("/:id", menuItemsH.Deactivate)
			menuItems.PUT("/:id/pricing", menuItemsH.BindPricing)
			menuItems.DELETE("/:id/recipe", menuItemsH.UnbindRecipe)
		}

		// Vendas
		v1.POST("/orders", middleware.RequireRole("staff", "admin"), ordersH.Place)
		v1.GET("/orders", middleware.RequireRole("staff", "admin"), ordersH.List)
		v1.GET("/orders/:id", middleware.RequireRole("staff", "admin"), ordersH.Get)
		v1.POST("/orders/:id/cancel", middleware.RequireRole("admin"), ordersH.Cancel)

		// Caixa
		caixa := v1.Group("/caixa")
		{
			caixa.POST("/open", middleware.RequireRole("staff", "admin"), caixaH.Open)
			caixa.POST("/entries", middleware.RequireRole("staff", "admin"), caixaH.RecordEntry)
			caixa.POST("/close", middleware.RequireRole("staff", "admin"), caixaH.Close)
			caixa.GET("/active", middleware.RequireRole("staff", "admin"), caixaH.GetActive)
			caixa.GET("/history", middleware.RequireRole("admin"), caixaH.History)
			caixa.GET("/:id", middleware.RequireRole("staff", "admin"), caixaH.Get)
		}

		// Relatórios — admin only
		reports := v1.Group("/reports", middleware.RequireRole("admin"))
		{
			reports.GET("/cmv", reportsH.CMV)
			reports.GET("/summary", reportsH.Summary)
		}

		// Usuários — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
