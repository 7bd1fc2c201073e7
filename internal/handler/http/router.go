package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/campus-erp/leave-backend-go/internal/config"
	"github.com/campus-erp/leave-backend-go/internal/handler/http/middleware"
	"github.com/campus-erp/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, leaveHandler LeaveHandler, configHandler ConfigHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "campus-leave"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires a verified access token; issuance lives in the
		// identity service, not here.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/breakup", leaveHandler.Breakup)
				r.Get("/balance", leaveHandler.GetBalance)
				r.Get("/history", leaveHandler.GetHistory)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/my", leaveHandler.ListMyRequests)
					r.Get("/pending", leaveHandler.ListPendingRequests)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", leaveHandler.GetRequest)
						r.Put("/", leaveHandler.UpdateRequest)
						r.Post("/cancel", leaveHandler.CancelRequest)
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
						r.Post("/recommend", leaveHandler.RecommendRequest)
					})
				})

				r.Route("/adjustments", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateAdjustment)
					r.Get("/my", leaveHandler.ListMyAdjustments)
					r.Get("/pending", leaveHandler.ListPendingAdjustments)
					r.Post("/{id}/approve", leaveHandler.ApproveAdjustment)
					r.Post("/{id}/reject", leaveHandler.RejectAdjustment)
				})
			})

			r.Route("/config", func(r chi.Router) {
				r.Get("/locations", configHandler.ListLocations)
				r.Get("/locations/{id}/holidays", configHandler.ListHolidays)
				r.Get("/locations/{id}/weekly-offs", configHandler.ListWeeklyOffs)
				r.Get("/leave-types", configHandler.ListLeaveTypes)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
