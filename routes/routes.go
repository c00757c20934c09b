package routes

import (
	"github.com/SCC42Luanda/transcendence-server/handlers"
	"github.com/SCC42Luanda/transcendence-server/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	quizHandler *handlers.QuizHandler,
	jwtSecret []byte,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterHandler)
		r.Post("/login", authHandler.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", authHandler.MeHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Consulta pública
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/standings", tournamentHandler.StandingsHandler)
		r.Get("/{tournamentID}/matches", tournamentHandler.ListMatchesHandler)

		// Operações autenticadas
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", tournamentHandler.CreateHandler)
			r.Post("/{tournamentID}/join", tournamentHandler.JoinHandler)
			r.Post("/{tournamentID}/leave", tournamentHandler.LeaveHandler)
			r.Post("/{tournamentID}/start", tournamentHandler.StartHandler)
			r.Post("/{tournamentID}/finalize", tournamentHandler.FinalizeHandler)
			r.Put("/{tournamentID}/banner", tournamentHandler.UploadBannerHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Put("/matches/{matchID}/result", tournamentHandler.RecordResultHandler)
	})

	router.Route("/quiz", func(r chi.Router) {
		r.Get("/categories", quizHandler.CategoriesHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/attempts", quizHandler.StartAttemptHandler)
			r.Post("/attempts/{attemptID}/submit", quizHandler.SubmitHandler)
			r.Get("/history", quizHandler.HistoryHandler)
			r.Get("/statistics", quizHandler.StatisticsHandler)
		})
	})
}
