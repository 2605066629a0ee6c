package http

import (
	"net/http"

	"heart-risk-predictor/internal/delivery/http/handler"
	"heart-risk-predictor/internal/delivery/http/middleware"
	"heart-risk-predictor/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	assessmentHandler *handler.AssessmentHandler
	formHandler       *handler.FormHandler
	requestLogger     *middleware.RequestLogger
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	assessmentHandler *handler.AssessmentHandler,
	formHandler *handler.FormHandler,
	requestLogger *middleware.RequestLogger,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		assessmentHandler: assessmentHandler,
		formHandler:       formHandler,
		requestLogger:     requestLogger,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Assessment page
	r.router.HandleFunc("/", r.formHandler.Show).Methods(http.MethodGet)
	r.router.HandleFunc("/", r.formHandler.Submit).Methods(http.MethodPost)

	// Prometheus scrape endpoint
	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.assessmentHandler.Health).Methods(http.MethodGet, http.MethodOptions)

	api.HandleFunc("/schema", r.assessmentHandler.GetSchema).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/education", r.assessmentHandler.GetEducation).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/features/encode", r.assessmentHandler.EncodeFeatures).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/predictions", r.assessmentHandler.Assess).Methods(http.MethodPost, http.MethodOptions)

	r.router.Use(r.requestLogger.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
