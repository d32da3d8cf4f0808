package wiring

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sophialabs/harcleaner/internal/domain/history"
	inboundhttp "github.com/sophialabs/harcleaner/internal/infrastructure/inbound/http"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/clock"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/filesystem"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/ratelimit"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/template"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
	"github.com/sophialabs/harcleaner/internal/infrastructure/services"
	"github.com/sophialabs/harcleaner/internal/infrastructure/usecases"
)

// Params holds the subset of configuration needed to construct infrastructure components.
type Params struct {
	Logger         ports.Logger
	Clock          ports.Clock // nil uses the system clock
	HistorySize    int
	ChainCacheSize int

	// Server enables the HTTP front end and its rate limiter.
	Server         bool
	RateLimit      float64
	RateBurst      int
	RateLimiterTTL time.Duration
	MaxBodySize    int64
	Registry       *prometheus.Registry
}

// Container owns the construction and lifecycle of all infrastructure components.
type Container struct {
	logger      ports.Logger
	clock       ports.Clock
	captures    *filesystem.CaptureRepository
	profiles    *filesystem.ProfileRepository
	reports     *template.Registry
	chains      *services.ChainCache
	runs        *history.RingBuffer
	cleanUC     *usecases.CleanCaptureUseCase
	rateLimiter *ratelimit.ClientLimiter
	server      *inboundhttp.Server
	closeOnce   sync.Once
}

// New constructs all infrastructure components. The rate limiter goroutine is
// started only when the server is enabled.
func New(p Params) (*Container, error) {
	if p.Server && (p.RateLimit <= 0 || p.RateBurst <= 0) {
		return nil, fmt.Errorf("rate limit and burst must be positive, got %v/%d", p.RateLimit, p.RateBurst)
	}

	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}

	captures := filesystem.NewCaptureRepository()
	compiler := services.NewCompiler(&template.ExprCompiler{})
	chains := services.NewChainCache(compiler, p.ChainCacheSize)
	runs := history.NewRingBuffer(p.HistorySize)
	cleanUC := usecases.NewCleanCaptureUseCase(captures, captures, chains, runs, clk, p.Logger)

	c := &Container{
		logger:   p.Logger,
		clock:    clk,
		captures: captures,
		profiles: filesystem.NewProfileRepository(),
		reports:  template.NewRegistry(),
		chains:   chains,
		runs:     runs,
		cleanUC:  cleanUC,
	}

	if p.Server {
		c.rateLimiter = ratelimit.NewClientLimiter(p.RateLimit, p.RateBurst, p.RateLimiterTTL, clk)
		c.server = inboundhttp.NewServer(cleanUC, runs, c.rateLimiter, p.Logger, inboundhttp.Options{
			MaxBodySize: p.MaxBodySize,
			Registry:    p.Registry,
		})
	}

	return c, nil
}

// Close releases resources held by the container. It is idempotent.
func (c *Container) Close() {
	c.closeOnce.Do(func() {
		if c.rateLimiter != nil {
			c.rateLimiter.Stop()
		}
	})
}

// Logger returns the logger passed at construction time.
func (c *Container) Logger() ports.Logger {
	return c.logger
}

// Clock returns the clock used for run timestamps.
func (c *Container) Clock() ports.Clock {
	return c.clock
}

// CleanUseCase returns the capture cleaning use case.
func (c *Container) CleanUseCase() *usecases.CleanCaptureUseCase {
	return c.cleanUC
}

// Profiles returns the YAML profile repository.
func (c *Container) Profiles() *filesystem.ProfileRepository {
	return c.profiles
}

// Reports returns the report template registry.
func (c *Container) Reports() *template.Registry {
	return c.reports
}

// ChainCache returns the compiled filter chain cache.
func (c *Container) ChainCache() *services.ChainCache {
	return c.chains
}

// History returns the run history buffer.
func (c *Container) History() *history.RingBuffer {
	return c.runs
}

// Server returns the HTTP server, or nil when the server is disabled.
func (c *Container) Server() *inboundhttp.Server {
	return c.server
}
