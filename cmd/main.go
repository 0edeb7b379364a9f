package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/lifeos-app/lifeos-backend/internal/clients/redis"
	"github.com/lifeos-app/lifeos-backend/internal/db"
	"github.com/lifeos-app/lifeos-backend/internal/handlers"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/lifeos-app/lifeos-backend/internal/observability"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/server"
	"github.com/lifeos-app/lifeos-backend/internal/services"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)
	allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",")
	if len(allowOrigins) == 1 && allowOrigins[0] == "" {
		allowOrigins = nil
	}

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "lifeos-backend",
		Environment: logMode,
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis token denylist (optional)
	denylist, err := redis.NewTokenDenylist(log)
	if err != nil {
		log.Warn("Token denylist unavailable, running without revocation", "error", err)
		denylist = nil
	} else {
		defer denylist.Close()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	recipeRepo := repos.NewRecipeRepo(thePG, log)
	mealPlanRepo := repos.NewMealPlanRepo(thePG, log)
	pantryRepo := repos.NewPantryRepo(thePG, log)
	shoppingListRepo := repos.NewShoppingListRepo(thePG, log)
	dailyLogRepo := repos.NewDailyLogRepo(thePG, log)
	bodyMetricRepo := repos.NewBodyMetricRepo(thePG, log)
	workoutRepo := repos.NewWorkoutRepo(thePG, log)
	transactionRepo := repos.NewTransactionRepo(thePG, log)
	contactRepo := repos.NewContactRepo(thePG, log)
	projectRepo := repos.NewProjectRepo(thePG, log)
	plannerEventRepo := repos.NewPlannerEventRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo, denylist,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	ingredientService := services.NewIngredientService(thePG, log, ingredientRepo)
	recipeService := services.NewRecipeService(thePG, log, recipeRepo, ingredientService)
	mealPlanService := services.NewMealPlanService(thePG, log, mealPlanRepo, recipeRepo)
	pantryService := services.NewPantryService(thePG, log, pantryRepo)
	shoppingListService := services.NewShoppingListService(thePG, log, shoppingListRepo, mealPlanRepo, recipeRepo, pantryRepo, pantryService)
	dailyLogService := services.NewDailyLogService(thePG, log, dailyLogRepo, recipeRepo, pantryService)
	bodyMetricService := services.NewBodyMetricService(thePG, log, bodyMetricRepo)
	workoutService := services.NewWorkoutService(thePG, log, workoutRepo)
	transactionService := services.NewTransactionService(thePG, log, transactionRepo)
	contactService := services.NewContactService(thePG, log, contactRepo)
	projectService := services.NewProjectService(thePG, log, projectRepo)
	plannerService := services.NewPlannerService(thePG, log, plannerEventRepo)
	dashboardService := services.NewDashboardService(thePG, log, dailyLogRepo, bodyMetricRepo, plannerEventRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	nutritionHandler := handlers.NewNutritionHandler(log, ingredientService, recipeService)
	mealPlanHandler := handlers.NewMealPlanHandler(log, mealPlanService)
	pantryHandler := handlers.NewPantryHandler(log, pantryService)
	shoppingListHandler := handlers.NewShoppingListHandler(log, shoppingListService)
	dailyLogHandler := handlers.NewDailyLogHandler(log, dailyLogService)
	bodyMetricHandler := handlers.NewBodyMetricHandler(log, bodyMetricService)
	workoutHandler := handlers.NewWorkoutHandler(log, workoutService)
	transactionHandler := handlers.NewTransactionHandler(log, transactionService)
	contactHandler := handlers.NewContactHandler(log, contactService)
	projectHandler := handlers.NewProjectHandler(log, projectService)
	plannerHandler := handlers.NewPlannerHandler(log, plannerService)
	dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		Mode:                logMode,
		AllowOrigins:        allowOrigins,
		AuthMiddleware:      authMiddleware,
		AuthHandler:         authHandler,
		NutritionHandler:    nutritionHandler,
		MealPlanHandler:     mealPlanHandler,
		PantryHandler:       pantryHandler,
		ShoppingListHandler: shoppingListHandler,
		DailyLogHandler:     dailyLogHandler,
		BodyMetricHandler:   bodyMetricHandler,
		WorkoutHandler:      workoutHandler,
		TransactionHandler:  transactionHandler,
		ContactHandler:      contactHandler,
		ProjectHandler:      projectHandler,
		PlannerHandler:      plannerHandler,
		DashboardHandler:    dashboardHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
