package http

import (
	"net/http"

	"go-clinic-dashboard/internal/delivery/http/handler"
	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	healthHandler      *handler.HealthHandler
	authHandler        *handler.AuthHandler
	screenHandler      *handler.ScreenHandler
	admissionHandler   *handler.AdmissionHandler
	activityLogHandler *handler.ActivityLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	kinds              middleware.KindLookup
	metrics            *metrics.DashboardMetrics
	metricsHandler     http.Handler
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	screenHandler *handler.ScreenHandler,
	admissionHandler *handler.AdmissionHandler,
	activityLogHandler *handler.ActivityLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	kinds middleware.KindLookup,
	dashboardMetrics *metrics.DashboardMetrics,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		screenHandler:      screenHandler,
		admissionHandler:   admissionHandler,
		activityLogHandler: activityLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		kinds:              kinds,
		metrics:            dashboardMetrics,
		metricsHandler:     metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	// Prometheus scrape endpoint
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// Preflight requests only need the CORS headers
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/permissions", r.authHandler.Permissions).Methods(http.MethodGet)
	protected.HandleFunc("/screens", r.authHandler.Kinds).Methods(http.MethodGet)

	// Screen routes: view level
	view := protected.PathPrefix("/screens/{kind}").Subrouter()
	view.Use(middleware.RequireKindAccess(r.kinds, middleware.AccessView))
	view.HandleFunc("", r.screenHandler.View).Methods(http.MethodGet)
	view.HandleFunc("", r.screenHandler.Unmount).Methods(http.MethodDelete)
	view.HandleFunc("/mount", r.screenHandler.Mount).Methods(http.MethodPost)
	view.HandleFunc("/refresh", r.screenHandler.Refresh).Methods(http.MethodPost)
	view.HandleFunc("/modal", r.screenHandler.OpenModal).Methods(http.MethodPost)
	view.HandleFunc("/modal", r.screenHandler.CloseModal).Methods(http.MethodDelete)
	view.HandleFunc("/alert", r.screenHandler.Alert).Methods(http.MethodGet)
	view.HandleFunc("/alert/{id}", r.screenHandler.DismissAlert).Methods(http.MethodDelete)

	// Screen routes: manage level
	manage := protected.PathPrefix("/screens/{kind}").Subrouter()
	manage.Use(middleware.RequireKindAccess(r.kinds, middleware.AccessManage))
	manage.HandleFunc("/draft", r.screenHandler.UpdateDraft).Methods(http.MethodPatch)
	manage.HandleFunc("/draft/submit", r.screenHandler.SubmitDraft).Methods(http.MethodPost)
	manage.HandleFunc("/records/{id}/status", r.screenHandler.SetStatus).Methods(http.MethodPost)
	manage.HandleFunc("/records/{id}/deactivate", r.screenHandler.Deactivate).Methods(http.MethodPost)

	// Admissions
	admissions := protected.PathPrefix("/admissions").Subrouter()
	admissions.Handle("/high-risk",
		middleware.RequirePermission(entity.PermissionAdmissionsView)(http.HandlerFunc(r.admissionHandler.HighRisk)),
	).Methods(http.MethodGet)
	admissions.Handle("/{id}/journey",
		middleware.RequirePermission(entity.PermissionAdmissionsView)(http.HandlerFunc(r.admissionHandler.Journey)),
	).Methods(http.MethodGet)
	admissions.Handle("/{id}/insights",
		middleware.RequirePermission(entity.PermissionAdmissionsView)(http.HandlerFunc(r.admissionHandler.Insights)),
	).Methods(http.MethodGet)
	admissions.Handle("/{id}/discharge",
		middleware.RequirePermission(entity.PermissionAdmissionsDischarge)(http.HandlerFunc(r.admissionHandler.Discharge)),
	).Methods(http.MethodPost)

	// Analytics
	analytics := protected.PathPrefix("/analytics").Subrouter()
	analytics.Use(middleware.RequirePermission(entity.PermissionAnalyticsView))
	analytics.HandleFunc("/quality-metrics", r.admissionHandler.QualityMetrics).Methods(http.MethodGet)

	// Activity journal
	activity := protected.PathPrefix("/activity").Subrouter()
	activity.Use(middleware.RequirePermission(entity.PermissionActivityView))
	activity.HandleFunc("", r.activityLogHandler.GetRecent).Methods(http.MethodGet)

	// Add CORS and metrics middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.metrics.Middleware)

	return r.router
}
