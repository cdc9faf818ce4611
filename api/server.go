package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/OldStager01/gpa-tracker/api/handlers"
	"github.com/OldStager01/gpa-tracker/api/middleware"
	"github.com/OldStager01/gpa-tracker/api/websocket"
	_ "github.com/OldStager01/gpa-tracker/docs"
	"github.com/OldStager01/gpa-tracker/internal/auth"
	"github.com/OldStager01/gpa-tracker/internal/events"
	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/metrics"
	"github.com/OldStager01/gpa-tracker/pkg/config"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

const limiterIdleTimeout = 10 * time.Minute

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.APIConfig
	metricsCfg  config.MetricsConfig
	tracker     handlers.Tracker
	users       handlers.UserFinder
	authService *auth.Service
	limiter     *middleware.RateLimiter
	metrics     *metrics.Metrics

	wsHub    *websocket.Hub
	wsBridge *websocket.EventBridge
	bus      *events.EventBus
	feed     <-chan *models.Event

	cancel context.CancelFunc
}

// NewServer wires the router. bus may be nil, in which case the websocket feed
// stays silent. users is only consulted when auth is enabled.
func NewServer(cfg config.Config, tracker handlers.Tracker, bus *events.EventBus, users handlers.UserFinder) *Server {
	switch cfg.App.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		router:     gin.New(),
		config:     cfg.API,
		metricsCfg: cfg.Metrics,
		tracker:    tracker,
		users:      users,
		metrics:    metrics.Get(),
		wsHub:      websocket.NewHub(&cfg.WebSocket),
		bus:        bus,
		cancel:     cancel,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.API.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.API.WriteTimeout,
		IdleTimeout:       cfg.API.IdleTimeout,
	}

	if cfg.API.AuthEnabled {
		s.authService = auth.NewService(cfg.API.JWTSecret, cfg.API.JWTDuration).WithIssuer(cfg.API.JWTIssuer)
	}
	if cfg.API.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.API.RateLimit, time.Minute)
	}

	s.setupMiddleware()
	s.setupRoutes()

	go s.wsHub.Run(ctx)

	if bus != nil {
		s.feed = bus.SubscribeAll()
		s.wsBridge = websocket.NewEventBridge(s.wsHub, s.feed)
		s.wsBridge.Start()
	}

	if s.limiter != nil {
		go s.cleanupLimiter(ctx)
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.CORS(s.config.CORS))
	s.router.Use(middleware.RequestLogger(s.metrics))
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.SecurityHeaders(s.config.CookieSecure))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxBodyBytes))
	s.router.Use(middleware.RateLimit(s.limiter))
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.tracker)
	courseHandler := handlers.NewCourseHandler(s.tracker)
	predictionHandler := handlers.NewPredictionHandler(s.tracker)
	summaryHandler := handlers.NewSummaryHandler(s.tracker)

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	if s.authService != nil && s.users != nil {
		authHandler := handlers.NewAuthHandler(s.users, s.authService, handlers.CookieSettings{
			Name:   s.config.CookieName,
			Secure: s.config.CookieSecure,
		})
		s.router.POST("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)
	}

	if s.config.SwaggerEnabled {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if s.metricsCfg.Enabled {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	endpointLimits := middleware.NewEndpointRateLimiter()
	endpointLimits.AddEndpoint(http.MethodPost, "/api/predictions/calculate", 30, time.Minute)

	protected := s.router.Group("/")
	if s.authService != nil {
		protected.Use(middleware.JWTAuth(s.authService, s.config.CookieName))
	}
	protected.Use(endpointLimits.Middleware())
	{
		protected.GET("/ws", websocket.ServeWebSocket(s.wsHub))

		api := protected.Group("/api")

		// Courses
		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.DELETE("/courses/:id", courseHandler.Delete)

		// Predictions
		api.GET("/predictions", predictionHandler.Get)
		api.POST("/predictions/calculate", predictionHandler.Calculate)
		api.GET("/predictions/explain", predictionHandler.Explain)

		// Summary
		api.GET("/summary", summaryHandler.Summary)
		api.GET("/grades", summaryHandler.Grades)
	}
}

func (s *Server) cleanupLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Cleanup(limiterIdleTimeout)
		}
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	logger.Infof("API server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the event bridge first
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}
	if s.bus != nil && s.feed != nil {
		s.bus.Unsubscribe(s.feed)
	}
	s.cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

