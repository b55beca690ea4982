package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/allloans"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanexport"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loansbyuser"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/notificationfeed"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/moderationgateway"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/requestgateway"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

// DefaultSubmitRequestsPerMinute bounds how often one user may submit loan requests.
const DefaultSubmitRequestsPerMinute = 30

// RequestGateway is the borrower facing surface the router needs.
type RequestGateway interface {
	SubmitLoanRequest(ctx context.Context, actor core.Actor, bookID core.BookIDString) (requestgateway.SubmitOutcome, error)
	ListMyLoans(ctx context.Context, actor core.Actor, statuses ...core.Status) (loansbyuser.LoansByUser, error)
	RequestExtension(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error)
	MyStats(ctx context.Context, actor core.Actor) (loanstats.LoanStats, error)
	NotificationFeed(ctx context.Context, actor core.Actor, limit uint) (notificationfeed.Feed, error)
}

// ModerationGateway is the administrator facing surface the router needs.
type ModerationGateway interface {
	ListAllLoans(ctx context.Context, actor core.Actor, filter moderationgateway.ListFilter) (allloans.AllLoans, error)
	ApproveRequest(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error)
	RejectRequest(ctx context.Context, actor core.Actor, loanID core.LoanIDString, reason string) (core.LoanRequest, error)
	MarkReturned(ctx context.Context, actor core.Actor, loanID core.LoanIDString) (core.LoanRequest, error)
	Stats(ctx context.Context, actor core.Actor) (loanstats.LoanStats, error)
	ExportCSV(ctx context.Context, actor core.Actor, filter moderationgateway.ListFilter) (loanexport.Export, error)
}

type routerConfig struct {
	allowOrigins            []string
	submitRequestsPerMinute int
	logger                  shell.ContextualLogger
}

// Option configures NewRouter.
type Option func(*routerConfig)

// WithAllowOrigins sets the origins allowed by CORS. Without it any origin is allowed.
func WithAllowOrigins(origins ...string) Option {
	return func(c *routerConfig) {
		c.allowOrigins = origins
	}
}

// WithSubmitRateLimit sets how many loan requests one user may submit per minute.
func WithSubmitRateLimit(requestsPerMinute int) Option {
	return func(c *routerConfig) {
		if requestsPerMinute > 0 {
			c.submitRequestsPerMinute = requestsPerMinute
		}
	}
}

// WithContextualLogger logs every request.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(c *routerConfig) {
		c.logger = logger
	}
}

// NewRouter wires the HTTP routes onto a new gin engine.
func NewRouter(requests RequestGateway, moderation ModerationGateway, opts ...Option) *gin.Engine {
	cfg := routerConfig{submitRequestsPerMinute: DefaultSubmitRequestsPerMinute}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.logger != nil {
		r.Use(requestLogMiddleware(cfg.logger))
	}
	r.Use(cors.New(corsConfig(cfg.allowOrigins)))
	r.Use(actorMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h := handlers{requests: requests, moderation: moderation}
	limiter := newUserLimiter(cfg.submitRequestsPerMinute)

	r.POST("/loans", rateLimitMiddleware(limiter), h.submitLoanRequest)
	r.POST("/loans/:id/extension", h.requestExtension)

	me := r.Group("/me")
	me.GET("/loans", h.listMyLoans)
	me.GET("/stats", h.myStats)
	me.GET("/notifications", h.notificationFeed)

	admin := r.Group("/admin")
	admin.GET("/loans", h.listAllLoans)
	admin.GET("/loans/export.csv", h.exportCSV)
	admin.POST("/loans/:id/approve", h.approve)
	admin.POST("/loans/:id/reject", h.reject)
	admin.POST("/loans/:id/return", h.markReturned)
	admin.GET("/stats", h.adminStats)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", HeaderUserID, HeaderUserRole},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true

	return cfg
}

func requestLogMiddleware(logger shell.ContextualLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
