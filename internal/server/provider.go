package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/metrics"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers/datagolf"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers/fixture"
)

// providerSpacing spaces upstream calls so one refresh cycle (field, live,
// rankings) stays under the Data Golf quota without stalling the job.
const providerSpacing = 2 * time.Second

// providerFactory assembles the provider with the shared wrappers (rate
// limit + retry).
type providerFactory struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, recorder: recorder}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, providerSpacing, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.recorder, providerName(cfg.Provider, base), 0, 0)
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "datagolf":
		return datagolf.NewClient(datagolf.Config{
			BaseURL:    cfg.DataGolf.BaseURL,
			APIKey:     cfg.DataGolf.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.DataGolf.Timeout},
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture",
			slog.String("provider", cfg.Provider))
		return fixture.New()
	}
}

// providerName returns a lower-cased name for metrics and log labels,
// derived from the instance when not explicitly configured.
func providerName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
