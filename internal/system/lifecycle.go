package system

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/api/rest"
	"github.com/KevinKickass/OpenIOTable/internal/api/websocket"
	"github.com/KevinKickass/OpenIOTable/internal/auth"
	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/KevinKickass/OpenIOTable/internal/export"
	"github.com/KevinKickass/OpenIOTable/internal/interfaces"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/KevinKickass/OpenIOTable/internal/storage"
	"go.uber.org/zap"
)

type LifecycleManager struct {
	config      *config.Config
	catalog     *catalog.Catalog
	builder     *iotable.Builder
	exporter    *export.Exporter
	authService *auth.AuthService
	wsHub       *websocket.Hub
	logger      *zap.Logger

	db       *storage.PostgresClient
	stations interfaces.StationStore

	restServer *rest.Server

	stateMu      sync.RWMutex
	currentState SystemState
	startedAt    time.Time

	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

func NewLifecycleManager(cfg *config.Config, logger *zap.Logger) (*LifecycleManager, error) {
	nameMode, err := iotable.ParseNameMode(cfg.Export.NameMode)
	if err != nil {
		return nil, fmt.Errorf("invalid export config: %w", err)
	}

	cat := catalog.Default()
	authService := auth.NewAuthService(cfg.Auth)

	return &LifecycleManager{
		config:       cfg,
		catalog:      cat,
		builder:      iotable.NewBuilder(cat, logger, iotable.WithNameMode(nameMode)),
		exporter:     export.NewExporter(cfg.Export.SheetName, logger),
		authService:  authService,
		wsHub:        websocket.NewHub(logger, authService),
		logger:       logger,
		currentState: StateInitializing,
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start connects storage when enabled and starts the hub and REST server.
func (lm *LifecycleManager) Start() error {
	lm.logger.Info("Starting OpenIOTable")

	if lm.config.Auth.Enabled && !lm.config.Auth.IsProductionReady() {
		lm.logger.Warn("JWT secret is the development default or too short",
			zap.String("env", lm.config.Auth.JWTSecretEnv))
	}

	if lm.config.Database.Enabled {
		if err := lm.connectStorage(); err != nil {
			lm.setError(err)
			return err
		}
	} else {
		lm.logger.Info("Database disabled, station storage unavailable")
	}

	go lm.wsHub.Run()

	lm.restServer = rest.NewServer(lm.config, lm, lm.logger, lm.wsHub, lm.authService)
	if err := lm.restServer.Start(); err != nil {
		err = fmt.Errorf("failed to start REST API: %w", err)
		lm.setError(err)
		return err
	}

	lm.stateMu.Lock()
	lm.startedAt = time.Now()
	lm.stateMu.Unlock()

	if err := lm.setState(StateRunning); err != nil {
		return err
	}

	lm.logger.Info("System started successfully",
		zap.Int("http_port", lm.config.Server.HTTPPort),
		zap.Bool("storage_enabled", lm.stations != nil),
		zap.Bool("auth_enabled", lm.config.Auth.Enabled))

	return nil
}

func (lm *LifecycleManager) connectStorage() error {
	db, err := storage.NewPostgresClient(lm.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return err
	}

	lm.db = db
	lm.stations = db
	lm.logger.Info("Database connected successfully",
		zap.String("host", lm.config.Database.Host),
		zap.String("database", lm.config.Database.Database))
	return nil
}

// Shutdown gracefully shuts down the system
func (lm *LifecycleManager) Shutdown(ctx context.Context) error {
	var shutdownErr error

	lm.shutdownOnce.Do(func() {
		lm.logger.Info("Shutting down system")

		if err := lm.setState(StateStopping); err != nil {
			lm.logger.Warn("Unexpected state on shutdown", zap.Error(err))
		}

		shutdownErr = lm.gracefulShutdown(ctx)

		if err := lm.setState(StateStopped); err != nil {
			lm.logger.Warn("Unexpected state on shutdown", zap.Error(err))
		}

		close(lm.shutdownChan)
	})

	return shutdownErr
}

func (lm *LifecycleManager) gracefulShutdown(ctx context.Context) error {
	var err error

	if lm.restServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, lm.config.Server.ShutdownTimeout)
		defer cancel()

		if shutdownErr := lm.restServer.Shutdown(shutdownCtx); shutdownErr != nil {
			err = fmt.Errorf("rest api shutdown failed: %w", shutdownErr)
		}
	}

	lm.wsHub.Stop()

	if lm.db != nil {
		lm.db.Close()
	}

	if err == nil {
		lm.logger.Info("Graceful shutdown completed")
	}
	return err
}

// Done is closed once Shutdown has completed.
func (lm *LifecycleManager) Done() <-chan struct{} {
	return lm.shutdownChan
}

func (lm *LifecycleManager) setState(state SystemState) error {
	lm.stateMu.Lock()
	if err := ValidateTransition(lm.currentState, state); err != nil {
		lm.stateMu.Unlock()
		return err
	}
	lm.currentState = state
	lm.stateMu.Unlock()

	lm.wsHub.Broadcast(websocket.NewSystemStatusMessage(state.String()))
	return nil
}

func (lm *LifecycleManager) setError(err error) {
	lm.logger.Error("System error", zap.Error(err))

	lm.stateMu.Lock()
	lm.currentState = StateError
	lm.stateMu.Unlock()

	lm.wsHub.Broadcast(websocket.NewSystemStatusMessage(StateError.String()))
}

// State returns the current lifecycle state.
func (lm *LifecycleManager) State() SystemState {
	lm.stateMu.RLock()
	defer lm.stateMu.RUnlock()
	return lm.currentState
}

// GetCurrentStatus returns current system status (Interface implementation)
func (lm *LifecycleManager) GetCurrentStatus() interfaces.SystemStatus {
	lm.stateMu.RLock()
	defer lm.stateMu.RUnlock()

	var startedAt int64
	if !lm.startedAt.IsZero() {
		startedAt = lm.startedAt.Unix()
	}

	return interfaces.SystemStatus{
		State:            lm.currentState.String(),
		Accepting:        lm.currentState.AcceptsGenerations(),
		StorageEnabled:   lm.stations != nil,
		AuthEnabled:      lm.authService.Enabled(),
		CatalogModels:    len(lm.catalog.Profiles()),
		ConnectedClients: lm.wsHub.GetClientCount(),
		StartedAt:        startedAt,
	}
}

// Config returns the configuration
func (lm *LifecycleManager) Config() *config.Config {
	return lm.config
}

func (lm *LifecycleManager) Catalog() *catalog.Catalog {
	return lm.catalog
}

func (lm *LifecycleManager) Builder() *iotable.Builder {
	return lm.builder
}

func (lm *LifecycleManager) Exporter() *export.Exporter {
	return lm.exporter
}

// Stations returns the station store, nil without a database.
func (lm *LifecycleManager) Stations() interfaces.StationStore {
	return lm.stations
}
