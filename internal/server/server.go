// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kc0bfv/power-sensor-monitor/api"
	"github.com/kc0bfv/power-sensor-monitor/api/resources"
	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/database"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/kc0bfv/power-sensor-monitor/internal/logging"
	"github.com/kc0bfv/power-sensor-monitor/internal/monitor"
	"github.com/kc0bfv/power-sensor-monitor/internal/monitoring"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository/files"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository/postgres"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository/redisstore"
	"github.com/kc0bfv/power-sensor-monitor/internal/webhook"
	nuts "github.com/vaudience/go-nuts"
	"go.uber.org/zap"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	logger     *zap.Logger
	webhook    *webhook.Service
	monitoring *monitoring.Service
	monitor    *monitor.Monitor
	closers    []func() error
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	logger, err := logging.New(s.config.Logging.Level, s.config.Logging.Format)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	s.logger = logger

	// Initialize services
	store, err := s.initializeStore(context.Background())
	if err != nil {
		return err
	}
	s.webhook = webhook.New(s.config.Webhook.AllEndpoints(), store, s.config.Webhook.HistLen)
	if err := s.webhook.Validate(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService()
	if s.config.Monitor.Enabled {
		s.monitor = NewMonitor(s.config.Monitor)
	}

	// Set up event handlers
	s.setupEventHandlers()

	// Setup routes
	s.srv.Handler = s.Handler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if s.monitor != nil {
		go s.monitor.Start(ctx, s.config.Monitor.Interval)
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// Handler builds the routed HTTP handler around the initialized services.
func (s *Server) Handler() http.Handler {
	client := NewFetcher(s.config.Dashboard)
	res := resources.NewResources(s.webhook, client, RenderOptions(s.config.Dashboard, s.logger), s.monitoring)
	return api.NewRouter(res, s.config.Webhook.URLBase, os.Stdout)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			nuts.L.Warnf("[Server] Error releasing store: %v", err)
		}
	}
	s.logger.Sync()

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.webhook.OnStored(func(readKey string) {
		s.monitoring.RecordEvent("sample_stored", map[string]string{
			"read_key": readKey,
		})
	})

	if s.monitor != nil {
		s.monitor.OnAlert(func(alerts []string) {
			nuts.L.Infof("[Monitor] %d alert(s) sent", len(alerts))
			s.monitoring.RecordEvent("monitor_alert", map[string]string{
				"count": fmt.Sprint(len(alerts)),
			})
		})
	}
}

// initializeStore opens the configured sample store backend
func (s *Server) initializeStore(ctx context.Context) (repository.SampleStore, error) {
	switch s.config.Webhook.Store {
	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, s.config.Redis)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		return redisstore.NewSampleRepository(client, s.config.Redis.KeyPrefix), nil

	case config.StorePostgres:
		db := initAppDB(s.config.Database.Postgres)
		repo := postgres.NewSampleRepository(db)
		if err := repo.InitializeSchema(ctx); err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		return repo, nil

	default:
		repo, err := files.NewSampleRepository(s.config.Webhook.WriteDir)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// NewFetcher builds the dashboard's data service client.
func NewFetcher(cfg config.DashboardConfig) *fetcher.Client {
	return fetcher.New(fetcher.Config{
		Endpoint: cfg.Endpoint,
		Path:     cfg.Path,
		Timeout:  cfg.FetchTimeout,
	}, nil)
}

// RenderOptions maps dashboard configuration onto renderer options.
func RenderOptions(cfg config.DashboardConfig, logger *zap.Logger) dashboard.Options {
	return dashboard.Options{
		Strict:          cfg.Strict,
		StatusThreshold: cfg.StatusThreshold,
		Debug:           logging.Debug(cfg.Debug, logger),
	}
}

// NewMonitor builds the sensor health monitor with the configured notifier.
func NewMonitor(cfg config.MonitorConfig) *monitor.Monitor {
	var notifier monitor.Notifier = monitor.LogNotifier{}
	if cfg.NotifyURL != "" {
		notifier = monitor.NewWebhookNotifier(cfg.NotifyURL, 10*time.Second)
	}
	return monitor.New(cfg, notifier)
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to database: %v", err)
	}
	// Set up connection timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}
	return wrappedDB
}
