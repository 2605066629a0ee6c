package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heart-risk-predictor/config"
	deliveryHttp "heart-risk-predictor/internal/delivery/http"
	"heart-risk-predictor/internal/delivery/http/handler"
	"heart-risk-predictor/internal/delivery/http/middleware"
	"heart-risk-predictor/internal/delivery/http/view"
	"heart-risk-predictor/internal/domain/entity"
	"heart-risk-predictor/internal/infrastructure/classifier"
	"heart-risk-predictor/internal/infrastructure/content"
	"heart-risk-predictor/internal/service"
	"heart-risk-predictor/internal/usecase"
	"heart-risk-predictor/pkg/validator"

	"github.com/sirupsen/logrus"
)

const readHeaderTimeout = 5 * time.Second

// App holds all dependencies for the application
type App struct {
	Config *config.Config
	Model  *classifier.Forest
	Server *http.Server
}

// New creates a new App instance with all dependencies initialized.
// A missing or incompatible model artifact is fatal.
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.Log)
	logrus.Info("Configuration loaded successfully")

	// Load educational content
	education, err := content.LoadEducationContent(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	// Load classifier
	model, err := classifier.LoadModel(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	app.Model = model
	logrus.WithFields(logrus.Fields{
		"model_type": model.ModelType(),
		"path":       cfg.Model.Path,
		"trees":      model.TreeCount(),
		"features":   model.FeatureNames(),
	}).Info("Model loaded successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, model, education)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, model *classifier.Forest, education *entity.EducationContent) (*http.Server, error) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	encoder := service.NewFeatureEncoder()
	assessmentUsecase, err := usecase.NewAssessmentUsecase(log, encoder, model, education, model.ModelType())
	if err != nil {
		log.WithFields(logrus.Fields{
			"expected": encoder.Columns(),
			"declared": model.FeatureNames(),
		}).Error("Model feature schema does not match the encoder")
		return nil, err
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(assessmentUsecase, customValidator)
	formHandler := handler.NewFormHandler(assessmentUsecase, customValidator, renderer, log)

	// Initialize middleware
	requestLogger := middleware.NewRequestLogger(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(assessmentHandler, formHandler, requestLogger, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server shutdown complete")
}
