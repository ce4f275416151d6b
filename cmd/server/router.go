package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/aimock/aimock-api/internal/api"
	apiMiddleware "github.com/aimock/aimock-api/internal/api/middleware"
)

// corsMaxAge is how long browsers may cache a preflight response, in seconds.
const corsMaxAge = 300

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Trace-Id"},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	}))

	interviewHandler := api.NewInterviewHandler(app.interviewService, app.logger)
	answerHandler := api.NewAnswerHandler(app.answerService, app.logger)
	healthHandler := api.NewHealthHandler(app.health, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(app.config.Server.RateLimitPerMinute, time.Minute))
		r.Use(authMiddleware.Authenticate)

		r.Route("/interviews", func(r chi.Router) {
			r.Post("/", interviewHandler.CreateInterview)
			r.Get("/", interviewHandler.ListInterviews)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", interviewHandler.GetInterview)
				r.Put("/", interviewHandler.UpdateInterview)
				r.Delete("/", interviewHandler.DeleteInterview)

				r.Post("/answers", answerHandler.SubmitAnswer)
				r.Get("/answers", answerHandler.ListAnswers)
			})
		})
	})

	r.Get("/health", healthHandler.Health)
	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	return r
}
