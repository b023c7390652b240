package api

import (
	"net/http"
	"time"

	"shnoor_lms/internal/api/handler"
	"shnoor_lms/internal/api/middleware"
	"shnoor_lms/internal/app/service"
	"shnoor_lms/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	contestService *service.ContestService,
	questionService *service.QuestionService,
	submissionService *service.SubmissionService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token from "Authorization: Bearer T" and puts
	// claims in context; Authenticator below decides whether they are usable.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Contest routes (authenticated, role-gated per group)
		contestHandler := handler.NewContestHandler(contestService)
		questionHandler := handler.NewQuestionHandler(questionService)
		submissionHandler := handler.NewSubmissionHandler(submissionService, leaderboardService)
		api.Route("/contests", func(contests chi.Router) {
			contests.Use(middleware.Authenticator)
			contestHandler.RegisterRoutes(contests)
			questionHandler.RegisterRoutes(contests)
			submissionHandler.RegisterRoutes(contests)
		})
	})

	return r
}
