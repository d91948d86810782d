package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/metrics"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServer struct {
	address         string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxPageSize     int
	corsOrigins     []string

	logger   logging.Logger
	services Services
	db       Pinger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	router   *gin.Engine
}

// NewHTTPServer wires the routes. Collectors are registered on reg, which is
// also the source for /metrics.
func NewHTTPServer(cfg *config.Config, l logging.Logger, svc Services, db Pinger, reg *prometheus.Registry) *HTTPServer {
	s := &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		idleTimeout:     cfg.IdleTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		maxPageSize:     cfg.MaxPageSize,
		corsOrigins:     cfg.CORSAllowedOrigins,
		logger:          l.With("module", "http_server"),
		services:        svc,
		db:              db,
		metrics:         metrics.New(reg),
		gatherer:        reg,
	}
	s.router = s.routes()
	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic recovered",
			"panic", recovered, "request_id", GetRequestID(c))
		abortWithMessage(c, http.StatusInternalServerError, msgServerError)
	}))
	r.Use(RequestID())
	r.Use(SecurityHeaders())
	r.Use(CORS(s.corsOrigins))
	r.Use(Metrics(s.metrics))
	r.Use(AccessLog(s.logger))

	r.NoRoute(func(c *gin.Context) {
		abortWithMessage(c, http.StatusNotFound, msgNotFound)
	})

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/live", s.live)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)

	posts := api.Group("/posts")
	posts.GET("", s.listPosts)
	posts.GET("/my", s.authenticated(s.listMyPosts))
	posts.GET("/:id", s.getPost)
	posts.POST("", s.authenticated(s.requireRole(s.createPost, models.RoleAdmin)))
	posts.PUT("/:id", s.authenticated(s.requireRole(s.updatePost, models.RoleAdmin)))
	posts.DELETE("/:id", s.authenticated(s.requireRole(s.deletePost, models.RoleAdmin)))
	posts.PATCH("/:id/status", s.authenticated(s.requireOwnership(s.setPostStatus)))
	posts.POST("/:id/publish", s.authenticated(s.requireRole(s.publishPost, models.RoleAdmin)))
	posts.POST("/:id/unpublish", s.authenticated(s.requireRole(s.unpublishPost, models.RoleAdmin)))

	posts.GET("/:id/comments", s.listComments)
	posts.POST("/:id/comments", s.authenticated(s.createComment))

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
