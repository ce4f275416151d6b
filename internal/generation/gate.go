package generation

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the minimum spacing between accepted requests.
const DefaultMinInterval = 500 * time.Millisecond

// Outcome labels reported to an Observer.
const (
	OutcomeSuccess     = "success"
	OutcomeThrottled   = "client_throttle"
	OutcomeRateLimited = "rate_limit"
	OutcomeFailed      = "generic"
)

// Chat sends a single prompt to a model and returns its text reply.
type Chat interface {
	SendMessage(ctx context.Context, prompt string) (string, error)
}

// Observer receives one call per Gate.Send. Duration is zero for throttled
// calls, which never reach upstream.
type Observer interface {
	ObserveRequest(outcome string, duration time.Duration)
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithMinInterval overrides DefaultMinInterval. Zero or negative disables throttling.
func WithMinInterval(d time.Duration) GateOption {
	return func(g *Gate) {
		g.minInterval = d
	}
}

// WithRequestTimeout bounds each upstream call. Zero means no timeout.
func WithRequestTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		g.timeout = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithObserver registers an Observer for request outcomes.
func WithObserver(o Observer) GateOption {
	return func(g *Gate) {
		g.observer = o
	}
}

// Gate wraps a Chat with a minimum-interval throttle and error
// classification. A single Gate should be shared by every caller in the
// process; it is safe for concurrent use.
type Gate struct {
	upstream    Chat
	logger      *slog.Logger
	limiter     *rate.Limiter
	minInterval time.Duration
	timeout     time.Duration
	now         func() time.Time
	observer    Observer
}

// NewGate creates a Gate in front of upstream.
func NewGate(upstream Chat, logger *slog.Logger, opts ...GateOption) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gate{
		upstream:    upstream,
		logger:      logger.With(slog.String("component", "request_gate")),
		minInterval: DefaultMinInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	// A burst-1 limiter refilling once per interval admits a request exactly
	// when a full interval has passed since the last admitted one. Rejected
	// calls leave its state untouched.
	limit := rate.Inf
	if g.minInterval > 0 {
		limit = rate.Every(g.minInterval)
	}
	g.limiter = rate.NewLimiter(limit, 1)
	return g
}

// MinInterval returns the configured minimum spacing between requests.
func (g *Gate) MinInterval() time.Duration {
	return g.minInterval
}

// Send forwards prompt upstream and returns the reply text.
//
// A call arriving less than MinInterval after the last accepted call fails
// with KindClientThrottle without contacting upstream. An accepted call
// consumes the interval before upstream is contacted, so failed or slow
// calls still count. Upstream failures are returned as *Error: KindRateLimit
// for HTTP 429, KindGeneric otherwise.
func (g *Gate) Send(ctx context.Context, prompt string) (string, error) {
	if !g.limiter.AllowN(g.now(), 1) {
		g.logger.WarnContext(ctx, "request rejected by client throttle",
			slog.Duration("min_interval", g.minInterval))
		g.observe(OutcomeThrottled, 0)
		return "", newClientThrottleError()
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.upstream.SendMessage(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		classified := Classify(err)
		if classified.Kind == KindRateLimit {
			g.logger.WarnContext(ctx, "upstream rate limit exceeded",
				slog.Int("status", classified.Status),
				slog.Duration("elapsed", elapsed))
			g.observe(OutcomeRateLimited, elapsed)
		} else {
			g.logger.ErrorContext(ctx, "upstream request failed",
				slog.Int("status", classified.Status),
				slog.String("error", err.Error()),
				slog.Duration("elapsed", elapsed))
			g.observe(OutcomeFailed, elapsed)
		}
		return "", classified
	}

	g.logger.DebugContext(ctx, "upstream request succeeded",
		slog.Int("response_length", len(text)),
		slog.Duration("elapsed", elapsed))
	g.observe(OutcomeSuccess, elapsed)
	return text, nil
}

// SendMessage makes Gate a Chat so it can be stacked in front of other
// Chat consumers.
func (g *Gate) SendMessage(ctx context.Context, prompt string) (string, error) {
	return g.Send(ctx, prompt)
}

func (g *Gate) observe(outcome string, d time.Duration) {
	if g.observer != nil {
		g.observer.ObserveRequest(outcome, d)
	}
}
