package api

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/celerix-dev/celerix-roster/internal/metrics"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngineConfig wires the HTTP binding. Controller and Router are required.
type EngineConfig struct {
	Controller Controller
	Router     *Router
	Writer     Writer
	Logger     *zap.Logger
	// RequestLog defaults to ZapRequestLog(Logger).
	RequestLog     RequestLogFunc
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewEngine binds the router's table onto a gin engine. Misses on the gin side
// are resolved through the same Router, so both paths agree on the sentinel.
func NewEngine(cfg EngineConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := cfg.Writer
	if writer == nil {
		writer = JSONWriter{}
	}
	reqLog := cfg.RequestLog
	if reqLog == nil {
		reqLog = ZapRequestLog(logger)
	}

	r := gin.New()
	// exact-match routing: no redirects to a "close enough" path
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = cfg.Router.Mismatch() == MismatchNotAllowed

	r.Use(
		requestID(),
		requestLog(reqLog, logger),
		ginzap.GinzapWithConfig(logger, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			Context:    requestFields,
		}),
		ginzap.CustomRecoveryWithZap(logger, true, recoverBroken),
		cors.New(corsConfig(cfg.AllowedOrigins)),
		cfg.Metrics.Middleware(),
		transportErrors(logger),
	)

	b := &binding{
		controller: cfg.Controller,
		router:     cfg.Router,
		writer:     writer,
		metrics:    cfg.Metrics,
	}
	for _, route := range cfg.Router.Routes() {
		r.Handle(route.Method, route.Path, b.serve(route))
	}
	r.NoRoute(b.miss)
	r.NoMethod(b.miss)

	return r
}

type binding struct {
	controller Controller
	router     *Router
	writer     Writer
	metrics    *metrics.Metrics
}

func (b *binding) serve(route Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := Request{Method: c.Request.Method, Path: c.Request.URL.Path}
		if route.Body {
			// an empty body decodes to a zero user, like an empty JSON object
			if err := c.ShouldBindJSON(&req.User); err != nil && !errors.Is(err, io.EOF) {
				_ = c.Error(fmt.Errorf("decode request body: %w", err))
				return
			}
		}
		b.render(c, route.Handle(b.controller, req))
	}
}

func (b *binding) miss(c *gin.Context) {
	_, miss, ok := b.router.Resolve(c.Request.Method, c.Request.URL.Path)
	if ok {
		// gin and the table disagree; never expected with exact routing
		miss = RouteMiss()
	}
	b.render(c, miss)
}

func (b *binding) render(c *gin.Context, out Outcome) {
	b.metrics.ObserveOutcome(out.Kind.String())
	if err := b.writer.Write(c.Writer, out); err != nil {
		_ = c.Error(err)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
