package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/sahakari-backend/internal/handlers"
	"github.com/GregMSThompson/sahakari-backend/internal/metrics"
	"github.com/GregMSThompson/sahakari-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps, m *metrics.Metrics, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.Metrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/account-applications", handlers.NewAccountApplicationHandlers(deps).ApplicationRoutes())
		r.Mount("/loan-applications", handlers.NewLoanApplicationHandlers(deps).ApplicationRoutes())
		r.Mount("/notices", handlers.NewNoticeHandlers(deps).NoticeRoutes())
		r.Mount("/notice-modal", handlers.NewNoticeModalHandlers(deps).NoticeModalRoutes())
		r.Mount("/gallery", handlers.NewGalleryHandlers(deps).GalleryRoutes())
		r.Mount("/hero", handlers.NewHeroHandlers(deps).HeroRoutes())
		r.Mount("/shareholders", handlers.NewShareholderHandlers(deps).ShareholderRoutes())
		r.Mount("/team", handlers.NewTeamHandlers(deps).TeamRoutes())
		r.Mount("/services", handlers.NewOfferingHandlers(deps).OfferingRoutes())
		r.Mount("/about", handlers.NewAboutHandlers(deps).AboutRoutes())
		r.Mount("/businesses", handlers.NewBusinessHandlers(deps).BusinessRoutes())
		r.Mount("/products", handlers.NewProductHandlers(deps).ProductRoutes())
		r.Mount("/users", handlers.NewUserHandlers(deps).UserRoutes())
		r.Mount("/translate", handlers.NewTranslateHandlers(deps).TranslateRoutes())
	})
	return r
}
