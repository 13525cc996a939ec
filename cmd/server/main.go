package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shazminnasir67/tech-flow/internal/api"
	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/app/session"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
	"github.com/shazminnasir67/tech-flow/internal/platform/cache"
	"github.com/shazminnasir67/tech-flow/internal/platform/config"
	"github.com/shazminnasir67/tech-flow/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.Seed(ctx, database.DB); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	// 3. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	projectRepo := repository.NewPgProjectRepository(database.DB)
	memberRepo := repository.NewPgTeamMemberRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)
	activityRepo := repository.NewPgActivityRepository(database.DB)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, activityRepo, database.DB)
	projectService := service.NewProjectService(projectRepo, memberRepo)
	dashboardService := service.NewDashboardService(projectRepo, memberRepo, taskRepo, activityRepo)
	statsService := service.NewStatsService(userRepo, projectRepo, taskRepo, database.DB)

	// 6. Session store
	sessions := session.NewStore(cache.RDB, config.AppConfig.SessionTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, projectService, dashboardService, statsService, sessions)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.AppPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
