package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shnoor_lms/internal/api"
	"shnoor_lms/internal/app/service"
	"shnoor_lms/internal/app/worker"
	"shnoor_lms/internal/common/security"
	"shnoor_lms/internal/domain/repository"
	"shnoor_lms/internal/platform/config"
	"shnoor_lms/internal/platform/database"
	"shnoor_lms/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	contestRepo := repository.NewPgContestRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	contestService := service.NewContestService(contestRepo)
	questionService := service.NewQuestionService(questionRepo, contestRepo, database.DB)
	leaderboardService := service.NewLeaderboardService(
		submissionRepo, queue.RDB,
		config.AppConfig.LeaderboardQueueName, config.AppConfig.LeaderboardCacheTTL,
	)
	submissionService := service.NewSubmissionService(submissionRepo, questionRepo, contestRepo, leaderboardService, database.DB)

	// 7. Initialize Leaderboard Worker (as a goroutine)
	leaderboardWorker := worker.NewLeaderboardWorker(queue.RDB, leaderboardService, config.AppConfig.LeaderboardQueueName)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go leaderboardWorker.Start(workerCtx)
	fmt.Println("Leaderboard worker started.")

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, contestService, questionService, submissionService, leaderboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
