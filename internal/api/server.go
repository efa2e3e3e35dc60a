// Package api provides the HTTP dashboard API for the registry.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mcpforge/mcpforge/internal/service/builder"
	"github.com/mcpforge/mcpforge/internal/service/configstore"
	"github.com/mcpforge/mcpforge/internal/service/exportimport"
	"github.com/mcpforge/mcpforge/internal/service/server"
	"github.com/mcpforge/mcpforge/internal/telemetry"
	"github.com/mcpforge/mcpforge/pkg/types"
	"github.com/mcpforge/mcpforge/pkg/version"
)

const (
	V0PathPrefix    = "/v0"
	V0ApiPathPrefix = "/api" + V0PathPrefix
)

type ServerOptions struct {
	// Port is the HTTP port to bind the server to
	Port string

	// AccessToken, when non-empty, requires a matching bearer token on all
	// /api requests. The default is open access for local development.
	AccessToken string

	ServerService *server.ServerService
	Builder       *builder.Builder
	ConfigStore   *configstore.Store
	ExportImport  *exportimport.Service

	OtelProviders *telemetry.Providers
	Metrics       telemetry.CustomMetrics
	Logger        *zap.Logger
}

// Server is the registry's HTTP API server.
type Server struct {
	port        string
	accessToken string
	router      *gin.Engine

	serverService *server.ServerService
	builder       *builder.Builder
	configStore   *configstore.Store
	exportImport  *exportimport.Service

	otelProviders *telemetry.Providers
	metrics       telemetry.CustomMetrics
	logger        *zap.Logger
}

// NewServer initializes a new Gin server for the registry API.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.ServerService == nil {
		return nil, fmt.Errorf("server service is required")
	}
	s := &Server{
		port:          opts.Port,
		accessToken:   opts.AccessToken,
		serverService: opts.ServerService,
		builder:       opts.Builder,
		configStore:   opts.ConfigStore,
		exportImport:  opts.ExportImport,
		otelProviders: opts.OtelProviders,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewNoopCustomMetrics()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	// Set up the router after the server is fully initialized
	s.router = s.setupRouter()

	return s, nil
}

// Start runs the Gin server (blocking call)
func (s *Server) Start() error {
	if err := s.router.Run(":" + s.port); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}
	return nil
}

// Router exposes the underlying gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRouter sets up the Gin router with the dashboard API endpoints.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// if otel is enabled, setup prometheus metrics endpoint
	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		// instrument gin
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))

		// expose prometheus metrics endpoint
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET(
		"/health",
		func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		},
	)

	r.GET(
		"/metadata",
		func(c *gin.Context) {
			m := &types.ServerMetadata{
				Version: version.GetVersion(),
			}
			c.JSON(http.StatusOK, m)
		},
	)

	// Setup /v0 API endpoints
	apiV0 := r.Group(V0ApiPathPrefix, s.verifyAccessToken())
	{
		apiV0.GET("/servers", s.listServersHandler())
		apiV0.POST("/servers", s.createServerHandler())
		apiV0.GET("/servers/:id", s.getServerHandler())
		apiV0.PUT("/servers/:id", s.updateServerHandler())
		apiV0.DELETE("/servers/:id", s.deleteServerHandler())
		apiV0.GET("/servers/:id/tools", s.listServerToolsHandler())
		apiV0.PUT("/servers/:id/tools/:toolId", s.toggleToolHandler())

		apiV0.POST("/build", s.buildServerHandler())
		apiV0.POST("/validate", s.validateConfigHandler())

		apiV0.GET("/configs", s.listConfigsHandler())
		apiV0.GET("/configs/:name", s.getConfigHandler())
		apiV0.DELETE("/configs/:name", s.deleteConfigHandler())

		apiV0.POST("/servers/:id/export", s.exportServerHandler())
		apiV0.POST("/import", s.importServerHandler())
	}

	return r
}

// verifyAccessToken rejects requests without the configured bearer token.
// When no token is configured, all requests pass through.
func (s *Server) verifyAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.accessToken == "" {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") != "Bearer "+s.accessToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing access token"})
			return
		}
		c.Next()
	}
}
