package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskpro/api/broker"
	"taskpro/api/config"
	"taskpro/api/database"
	"taskpro/api/routes"
	"taskpro/api/services"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived dependency of the API process.
type App struct {
	Config config.Config
	DB     *database.Database
	Events broker.Publisher
	Router *gin.Engine

	server *http.Server
}

// New connects storage and the event publisher and builds the router.
func New(cfg config.Config) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewWithDatabase(cfg, db), nil
}

// NewWithDatabase builds the application around an already migrated database.
func NewWithDatabase(cfg config.Config, db *database.Database) *App {
	events := broker.NewPublisher(cfg.NATSURL, cfg.EventsSubjectPrefix)

	userService := services.NewUserService(services.NewBcryptHasher(cfg.BcryptCost), events)
	taskService := services.NewTaskService(events)

	router := routes.NewRouter(routes.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AccessLog:      true,
	}, db, userService, taskService)

	return &App{
		Config: cfg,
		DB:     db,
		Events: events,
		Router: router,
		server: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("API server is running on port %s", a.Config.AppPort)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close releases the publisher and the database connection.
func (a *App) Close() {
	if a.Events != nil {
		a.Events.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
