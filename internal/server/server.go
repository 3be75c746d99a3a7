// FilePath: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsatony/w4b_v3/server/stations/api"
	"github.com/itsatony/w4b_v3/server/stations/internal/config"
	"github.com/itsatony/w4b_v3/server/stations/internal/database"
	"github.com/itsatony/w4b_v3/server/stations/internal/monitoring"
	"github.com/itsatony/w4b_v3/server/stations/internal/repository/postgres"
	"github.com/itsatony/w4b_v3/server/stations/internal/service"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	service    *service.Service
	monitoring *monitoring.Service
	publisher  *monitoring.RedisPublisher
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start connects dependencies, serves requests and blocks until shutdown
func (s *Server) Start() error {
	defer s.close()
	if err := s.initialize(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

func (s *Server) initialize() error {
	db, err := database.NewPostgresDB(s.config.Database)
	if err != nil {
		return err
	}
	s.db = db

	if s.config.Database.AutoMigrate {
		if err := database.MigrateUp(context.Background(), db); err != nil {
			return err
		}
	}

	sensors := postgres.NewSensorRepository(db)
	stations := postgres.NewStationRepository(db, sensors, s.config.Stations.KeyLength)
	s.service = service.New(stations, sensors, s.config.Stations.KeyLength)
	if err := s.service.Validate(); err != nil {
		return err
	}

	var publisher monitoring.Publisher
	if s.config.Redis.Enabled {
		s.publisher = monitoring.NewRedisPublisher(redis.NewClient(&redis.Options{
			Addr:     s.config.Redis.Addr(),
			Password: s.config.Redis.Password,
			DB:       s.config.Redis.DB,
		}))
		publisher = s.publisher
		nuts.L.Infof("[Server] Publishing station events to redis %s channel %s", s.config.Redis.Addr(), s.config.Redis.Channel)
	}
	s.monitoring = monitoring.NewService(monitoring.Config{Channel: s.config.Redis.Channel}, publisher)
	s.setupEventHandlers()

	s.srv.Handler = api.NewRouter(s.service, s.config.Server.AllowedOrigins, s.handleHealth())
	return nil
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	}

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			nuts.L.Warnf("[Server] Failed to close redis client: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Failed to close database: %v", err)
		}
	}
}

// handleHealth reports ok only while the database answers pings
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := s.db.Ping(ctx); err != nil {
			nuts.L.Warnf("[Server] Health check failed: %v", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status, "version": nuts.GetVersion()})
	}
}

func (s *Server) setupEventHandlers() {
	record := func(name string) func(id string) {
		return func(id string) {
			s.monitoring.RecordEvent(name, map[string]string{"station_id": id})
		}
	}
	s.service.OnStationEvent(service.EventStationCreated, record("station_creation"))
	s.service.OnStationEvent(service.EventStationUpdated, record("station_update"))
	s.service.OnStationEvent(service.EventStationKeyRotated, record("station_key_rotation"))
	s.service.OnStationEvent(service.EventStationDeleted, record("station_deletion"))
}
