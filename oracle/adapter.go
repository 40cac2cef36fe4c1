package oracle

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// Config bounds how stale or uncertain a Reading may be before the adapter
// rejects it.
type Config struct {
	// MaxStalenessSeconds is the largest now-PublishTime gap tolerated.
	MaxStalenessSeconds uint64
	// MaxConfidenceRatio bounds Confidence/Price; above it the reading is
	// considered too uncertain to act on.
	MaxConfidenceRatio fixedpoint.UFixedPoint
}

// Adapter validates Readings against Config and produces the normalised
// quote-per-base price every market operation consumes. A rate limiter
// throttles how often a rejected reading is logged, the way the teacher's
// gateway/middleware.RateLimiter throttles repeated client requests,
// because a misbehaving feed can otherwise flood the log on every accrual
// tick.
type Adapter struct {
	cfg            Config
	logger         *slog.Logger
	rejectLogLimit *rate.Limiter
}

// NewAdapter constructs an Adapter. logger defaults to slog.Default() when
// nil, matching the convention the rest of the lending core follows.
func NewAdapter(cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		cfg:            cfg,
		logger:         logger,
		rejectLogLimit: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
}

// Quote validates reading against the adapter's staleness and confidence
// bounds at the given unix timestamp now, returning the normalised
// quote-per-base price on success.
func (a *Adapter) Quote(reading Reading, now int64) (fixedpoint.IFixedPoint, error) {
	if reading.PublishTime > now {
		return fixedpoint.IFixedPoint{}, lendingerr.ErrClockWentBackwards
	}
	age := uint64(now - reading.PublishTime)
	if age > a.cfg.MaxStalenessSeconds {
		a.logRejected("oracle reading stale", "age_seconds", age, "max_staleness_seconds", a.cfg.MaxStalenessSeconds)
		return fixedpoint.IFixedPoint{}, lendingerr.ErrOracleStale
	}

	if reading.Price.IsNegative() || reading.Price.IsZero() {
		a.logRejected("oracle reading non-positive price")
		return fixedpoint.IFixedPoint{}, lendingerr.ErrOracleNegativePrice
	}

	ratio, err := reading.Confidence.Div(reading.Price, fixedpoint.RoundUp)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	ratioUnsigned, err := signedToUnsigned(ratio)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	if ratioUnsigned.Cmp(a.cfg.MaxConfidenceRatio) > 0 {
		a.logRejected("oracle reading confidence too low")
		return fixedpoint.IFixedPoint{}, lendingerr.ErrOracleConfidenceTooLow
	}

	return reading.Normalise()
}

func (a *Adapter) logRejected(msg string, args ...any) {
	if a.rejectLogLimit.Allow() {
		a.logger.Warn(msg, args...)
	}
}

func signedToUnsigned(v fixedpoint.IFixedPoint) (fixedpoint.UFixedPoint, error) {
	if v.IsNegative() {
		return fixedpoint.UFixedPoint{}, lendingerr.ErrOracleNegativePrice
	}
	return fixedpoint.UTryLit(v.String())
}
