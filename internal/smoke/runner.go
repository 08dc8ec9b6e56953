package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/crm/pkg/logger"
)

// Run executes every check against cfg.BaseURL. Checks keep running after a
// failure; the returned error wraps ErrChecksFailed when any failed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting crm smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("verbose", cfg.Verbose))

	s := &session{client: newHTTPClient(cfg)}
	for _, c := range checks() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		start := time.Now()
		err := c.run(ctx, s)
		r := Result{Name: c.name, Err: err, Duration: time.Since(start)}
		stats.Results = append(stats.Results, r)

		if err != nil {
			stats.Failed++
			log.Error(ctx, "check failed",
				logger.String("check", c.name),
				logger.Duration("duration", r.Duration),
				logger.Error(err))
			continue
		}
		stats.Passed++
		log.Info(ctx, "check passed",
			logger.String("check", c.name),
			logger.Duration("duration", r.Duration))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "final statistics",
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrChecksFailed, stats.Failed, len(stats.Results))
	}
	return stats, nil
}
