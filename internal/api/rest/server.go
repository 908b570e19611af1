package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/api/websocket"
	"github.com/KevinKickass/OpenIOTable/internal/auth"
	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/KevinKickass/OpenIOTable/internal/interfaces"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router      *gin.Engine
	lm          interfaces.LifecycleManager
	logger      *zap.Logger
	server      *http.Server
	wsHub       *websocket.Hub
	authService *auth.AuthService
}

func NewServer(cfg *config.Config, lm interfaces.LifecycleManager, logger *zap.Logger, wsHub *websocket.Hub, authService *auth.AuthService) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:      gin.New(),
		lm:          lm,
		logger:      logger,
		wsHub:       wsHub,
		authService: authService,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("REST server failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down REST API server")
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(gin.Recovery())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware())

	// Public routes (no auth required)
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		// ==================== CATALOG & SUMMARY (READ) ====================
		read := v1.Group("")
		read.Use(s.authService.AuthMiddleware())
		read.Use(auth.RequirePermission(auth.PermRead))
		{
			read.GET("/catalog", s.getCatalog)
			read.POST("/channels/summary", s.summarizeChannels)
			read.GET("/system/status", s.getSystemStatus)
		}

		// ==================== POINT TABLES (GENERATE) ====================
		tables := v1.Group("/io-tables")
		tables.Use(s.authService.AuthMiddleware())
		tables.Use(auth.RequirePermission(auth.PermGenerate))
		{
			tables.POST("", s.buildTable)
			tables.POST("/export", s.exportTable)
		}

		// ==================== STATIONS ====================
		stations := v1.Group("/stations")
		stations.Use(s.authService.AuthMiddleware())
		{
			stations.GET("", auth.RequirePermission(auth.PermRead), s.listStations)
			stations.GET("/:name/equipment", auth.RequirePermission(auth.PermRead), s.getStationEquipment)
			stations.GET("/:name/generations", auth.RequirePermission(auth.PermRead), s.listGenerations)

			stations.POST("/:name/io-table", auth.RequirePermission(auth.PermGenerate), s.buildStationTable)

			stations.PUT("/:name/equipment", auth.RequirePermission(auth.PermManage), s.putStationEquipment)
			stations.DELETE("/:name/equipment", auth.RequirePermission(auth.PermManage), s.deleteStation)
		}

		// ==================== WEBSOCKET (Auth via first message) ====================
		v1.GET("/ws/live", s.wsLiveConnection)
	}
}

func (s *Server) wsLiveConnection(c *gin.Context) {
	websocket.ServeWs(s.wsHub, c.Writer, c.Request)
}

// Health check (public)
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
