package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/image-compress-service/modules/imageservice"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module implements an HTTP server using the Gin framework. Every route sits
// behind the origin gate: requests without an Origin header pass, requests
// from a configured origin pass, everything else is refused before any
// upload byte is read.
type Module struct {
	port           int
	maxUploadSize  int64
	allowedOrigins []string
	server         *http.Server
	engine         *gin.Engine
	handlers       *Handlers
	imageModule    *imageservice.Module
	logger         types.Logger
}

// Compile-time interface checks
var _ mono.Module = (*Module)(nil)

// NewModule creates a new HTTP server module.
func NewModule(port int, maxUploadSize int64, allowedOrigins []string, logger types.Logger) *Module {
	return &Module{
		port:           port,
		maxUploadSize:  maxUploadSize,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "http-server"
}

// SetImageModule sets the image service module dependency.
func (m *Module) SetImageModule(imageModule *imageservice.Module) {
	m.imageModule = imageModule
}

// Start initializes and starts the HTTP server.
func (m *Module) Start(ctx context.Context) error {
	if m.imageModule == nil {
		return fmt.Errorf("image-service module not set")
	}

	m.setupEngine()

	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", m.port),
		Handler:           m.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		m.logger.Info("HTTP server starting", "port", m.port)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.server != nil {
		m.logger.Info("Shutting down HTTP server")
		return m.server.Shutdown(ctx)
	}
	return nil
}

// setupEngine builds the Gin engine, middleware chain and routes.
func (m *Module) setupEngine() {
	gin.SetMode(gin.ReleaseMode)

	m.engine = gin.New()
	m.engine.Use(gin.Recovery())
	m.engine.Use(m.loggingMiddleware())
	m.engine.Use(cors.New(m.corsConfig()))
	m.engine.MaxMultipartMemory = m.maxUploadSize

	m.handlers = NewHandlers(m.imageModule.Service())

	m.registerRoutes()
}

// registerRoutes sets up all HTTP routes.
func (m *Module) registerRoutes() {
	m.engine.GET("/health", m.handlers.HealthCheck)

	images := m.engine.Group("/api/images", m.bodyLimitMiddleware())
	{
		images.POST("/upload", m.handlers.UploadImage)
	}

	// Artifact retrieval over the same storage tree the pipeline writes to.
	// No directory listing; unknown paths yield 404.
	m.engine.Static("/uploads", m.imageModule.Service().Root())
}

// corsConfig builds the origin gate. Preflight requests are answered for
// every route without reaching the pipeline.
func (m *Module) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}

	for _, origin := range m.allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = m.allowedOrigins
	return cfg
}

// bodyLimitMiddleware caps the request body ahead of multipart parsing. A
// body of exactly the limit is accepted, one byte more is refused.
func (m *Module) bodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxUploadSize)
		c.Next()
	}
}

// loggingMiddleware provides request logging.
func (m *Module) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		m.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
