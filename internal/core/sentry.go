// AngelaMos | 2026
// sentry.go

package core

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/carterperez-dev/metro-bond/internal/config"
)

type Sentry struct {
	enabled bool
}

func NewSentry(cfg config.SentryConfig, app config.AppConfig) (*Sentry, error) {
	if cfg.DSN == "" {
		return &Sentry{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      app.Environment,
		Release:          app.Name + "@" + app.Version,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	return &Sentry{enabled: true}, nil
}

func (s *Sentry) Enabled() bool {
	return s.enabled
}

func (s *Sentry) Flush(timeout time.Duration) {
	if s.enabled {
		sentry.Flush(timeout)
	}
}
