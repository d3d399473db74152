// Package config holds the toolkit's tunable defaults: the arbitrage
// detector's relaxation epsilon and rate-staleness threshold, the
// DP-optimal allocator's discretisation granularity, and the supported
// currency roster. Grounded on the teacher's ledger/config.go, which
// holds an analogous options-driven Config with context attach/retrieve
// helpers and an options-map parsing entry point.
package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cardops/backoffice/allocation"
	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/money"
	"github.com/shopspring/decimal"
)

// Config holds the tunable defaults read by the arbitrage detector and by
// the CLI, which passes DP on to the DP-optimal allocation strategy.
type Config struct {
	// RelaxationEpsilon is the Bellman-Ford slack below which a relaxation
	// is not considered an improvement.
	RelaxationEpsilon float64
	// StalenessThreshold is the maximum age a CurrencyPair quote may have
	// before fxgraph.CurrencyPair.IsStale reports it as stale.
	StalenessThreshold time.Duration
	// DP is the DP-optimal allocation strategy's discretisation
	// configuration.
	DP allocation.DPConfig
	// Currencies is the supported currency roster, by ISO-style code.
	Currencies []string
}

// NewConfig creates a Config with the toolkit's defaults.
func NewConfig() *Config {
	return &Config{
		RelaxationEpsilon:  1e-8,
		StalenessThreshold: 5 * time.Minute,
		DP:                 allocation.DefaultDPConfig(),
		Currencies:         []string{"TRY", "USD", "EUR", "GBP", "JPY"},
	}
}

// ConfigFromOptions parses an options map (the shape a CLI flag parser or
// config file loader produces: option name -> repeated values) into a
// Config, starting from NewConfig's defaults. Supports:
//   - option "relaxation_epsilon" "1e-9"
//   - option "staleness_threshold" "10m"
//   - option "dp_granularity" "0.01"
func ConfigFromOptions(options map[string][]string) (*Config, error) {
	cfg := NewConfig()

	if vals := options["relaxation_epsilon"]; len(vals) > 0 {
		eps, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.InvalidArgument, err, "invalid relaxation_epsilon %q", vals[0])
		}
		cfg.RelaxationEpsilon = eps
	}

	if vals := options["staleness_threshold"]; len(vals) > 0 {
		d, err := time.ParseDuration(vals[0])
		if err != nil {
			return nil, cerrors.Wrap(cerrors.InvalidArgument, err, "invalid staleness_threshold %q", vals[0])
		}
		cfg.StalenessThreshold = d
	}

	if vals := options["dp_granularity"]; len(vals) > 0 {
		d, err := decimal.NewFromString(vals[0])
		if err != nil {
			return nil, cerrors.Wrap(cerrors.InvalidArgument, err, "invalid dp_granularity %q", vals[0])
		}
		cfg.DP = allocation.DPConfig{Granularity: money.NewDecimalAmount(d)}
	}

	if vals := options["currencies"]; len(vals) > 0 {
		cfg.Currencies = strings.Split(vals[0], ",")
	}

	return cfg, nil
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

// WithContext returns a new context with c attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext retrieves the Config from context, or a default Config if
// none was attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return NewConfig()
}

// String renders the configuration for diagnostic output.
func (c *Config) String() string {
	return fmt.Sprintf(
		"relaxation_epsilon=%g staleness_threshold=%s dp_granularity=%s currencies=%s",
		c.RelaxationEpsilon, c.StalenessThreshold, c.DP.Granularity, strings.Join(c.Currencies, ","),
	)
}
