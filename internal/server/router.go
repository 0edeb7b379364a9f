package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lifeos-app/lifeos-backend/internal/handlers"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
)

type RouterConfig struct {
	Mode         string
	AllowOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler         *handlers.AuthHandler
	NutritionHandler    *handlers.NutritionHandler
	MealPlanHandler     *handlers.MealPlanHandler
	PantryHandler       *handlers.PantryHandler
	ShoppingListHandler *handlers.ShoppingListHandler
	DailyLogHandler     *handlers.DailyLogHandler
	BodyMetricHandler   *handlers.BodyMetricHandler
	WorkoutHandler      *handlers.WorkoutHandler
	TransactionHandler  *handlers.TransactionHandler
	ContactHandler      *handlers.ContactHandler
	ProjectHandler      *handlers.ProjectHandler
	PlannerHandler      *handlers.PlannerHandler
	DashboardHandler    *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if strings.EqualFold(cfg.Mode, "prod") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(otelgin.Middleware("lifeos-backend"))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/register", cfg.AuthHandler.Register)
	router.POST("/api/login", cfg.AuthHandler.Login)
	router.POST("/api/refresh", cfg.AuthHandler.Refresh)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/logout", cfg.AuthHandler.Logout)

	api.GET("/ingredients", cfg.NutritionHandler.ListIngredients)

	api.POST("/recipes", cfg.NutritionHandler.CreateRecipe)
	api.GET("/recipes", cfg.NutritionHandler.ListRecipes)
	api.GET("/recipes/:id", cfg.NutritionHandler.GetRecipe)
	api.PUT("/recipes/:id", cfg.NutritionHandler.UpdateRecipe)
	api.POST("/recipes/:id/duplicate", cfg.NutritionHandler.DuplicateRecipe)
	api.DELETE("/recipes/:id", cfg.NutritionHandler.DeleteRecipe)

	api.PUT("/meal-plan", cfg.MealPlanHandler.ReplaceWeek)
	api.GET("/meal-plan", cfg.MealPlanHandler.GetWeek)

	api.GET("/pantry", cfg.PantryHandler.List)
	api.PUT("/pantry", cfg.PantryHandler.Upsert)
	api.DELETE("/pantry/:id", cfg.PantryHandler.Delete)

	api.GET("/shopping-list", cfg.ShoppingListHandler.List)
	api.POST("/shopping-list/generate", cfg.ShoppingListHandler.Generate)
	api.POST("/shopping-list", cfg.ShoppingListHandler.AddManual)
	api.PATCH("/shopping-list/:id/checked", cfg.ShoppingListHandler.ToggleChecked)
	api.DELETE("/shopping-list/:id", cfg.ShoppingListHandler.Delete)

	api.POST("/daily-logs", cfg.DailyLogHandler.Create)
	api.GET("/daily-logs", cfg.DailyLogHandler.ListRange)
	api.PUT("/daily-logs/:id", cfg.DailyLogHandler.Update)
	api.DELETE("/daily-logs/:id", cfg.DailyLogHandler.Delete)

	api.PUT("/body-metrics", cfg.BodyMetricHandler.Upsert)
	api.GET("/body-metrics", cfg.BodyMetricHandler.ListRange)
	api.GET("/body-metrics/latest", cfg.BodyMetricHandler.Latest)
	api.DELETE("/body-metrics/:id", cfg.BodyMetricHandler.Delete)

	api.POST("/workouts", cfg.WorkoutHandler.Create)
	api.GET("/workouts", cfg.WorkoutHandler.ListRange)
	api.PUT("/workouts/:id", cfg.WorkoutHandler.Update)
	api.DELETE("/workouts/:id", cfg.WorkoutHandler.Delete)

	api.POST("/transactions", cfg.TransactionHandler.Create)
	api.GET("/transactions", cfg.TransactionHandler.ListRange)
	api.GET("/transactions/summary", cfg.TransactionHandler.MonthlySummary)
	api.PUT("/transactions/:id", cfg.TransactionHandler.Update)
	api.DELETE("/transactions/:id", cfg.TransactionHandler.Delete)

	api.POST("/contacts", cfg.ContactHandler.Create)
	api.GET("/contacts", cfg.ContactHandler.List)
	api.PUT("/contacts/:id", cfg.ContactHandler.Update)
	api.POST("/contacts/:id/touch", cfg.ContactHandler.Touch)
	api.DELETE("/contacts/:id", cfg.ContactHandler.Delete)

	api.POST("/projects", cfg.ProjectHandler.Create)
	api.GET("/projects", cfg.ProjectHandler.List)
	api.GET("/projects/:id", cfg.ProjectHandler.Get)
	api.PUT("/projects/:id", cfg.ProjectHandler.Update)
	api.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	api.POST("/projects/:id/tasks", cfg.ProjectHandler.AddTask)
	api.PUT("/projects/tasks/:taskID", cfg.ProjectHandler.UpdateTask)
	api.DELETE("/projects/tasks/:taskID", cfg.ProjectHandler.DeleteTask)

	api.POST("/planner/events", cfg.PlannerHandler.Create)
	api.GET("/planner/events", cfg.PlannerHandler.ListRange)
	api.PUT("/planner/events/:id", cfg.PlannerHandler.Update)
	api.DELETE("/planner/events/:id", cfg.PlannerHandler.Delete)

	api.GET("/dashboard", cfg.DashboardHandler.Summary)

	return router
}
