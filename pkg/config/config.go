package config

import (
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	"github.com/Goutam245/Crypto-DashBoard/pkg/interval"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	Server     ServerConfig     `envPrefix:"SERVER_"`
	Market     MarketConfig     `envPrefix:"MARKET_"`
	Book       BookConfig       `envPrefix:"BOOK_"`
	Candle     CandleConfig     `envPrefix:"CANDLE_"`
	Alert      AlertConfig      `envPrefix:"ALERT_"`
	Feed       FeedConfig       `envPrefix:"FEED_"`
	Subscriber SubscriberConfig `envPrefix:"SUBSCRIBER_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-core"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// ServerConfig represents the HTTP and websocket listener configuration.
type ServerConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

// MarketConfig declares the tradable instruments. Each entry is
// id:tickSize, for example BTC-USDT:0.01.
type MarketConfig struct {
	Instruments []string `env:"INSTRUMENTS" envSeparator:"," envDefault:"BTC-USDT:0.01,ETH-USDT:0.01,SOL-USDT:0.001"`
}

// BookConfig tunes the synthetic ladder.
type BookConfig struct {
	Depth   int     `env:"DEPTH" envDefault:"15"`
	Spacing float64 `env:"SPACING" envDefault:"0.0001"`
	Seed    int64   `env:"SEED" envDefault:"0"`
}

// CandleConfig tunes the aggregator.
type CandleConfig struct {
	Intervals []string `env:"INTERVALS" envSeparator:"," envDefault:"1m,5m,15m,1h,4h,1d"`
	Retention int      `env:"RETENTION" envDefault:"100"`
}

// AlertConfig tunes the alert engine.
type AlertConfig struct {
	HistoryCap int `env:"HISTORY_CAP" envDefault:"100"`
}

// FeedConfig tunes the synthetic tick source.
type FeedConfig struct {
	Enabled        bool    `env:"ENABLED" envDefault:"true"`
	IntervalMillis int     `env:"INTERVAL_MILLIS" envDefault:"500"`
	Drift          float64 `env:"DRIFT" envDefault:"0.0002"`
	Seed           int64   `env:"SEED" envDefault:"0"`
	SecondVenue    string  `env:"SECOND_VENUE" envDefault:""`
	VenueOffset    float64 `env:"VENUE_OFFSET" envDefault:"0.001"`
}

// SubscriberConfig bounds per-subscription event buffers.
type SubscriberConfig struct {
	QueueSize int `env:"QUEUE_SIZE" envDefault:"64"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.NewConfiguration("env", "failed to parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if len(c.Market.Instruments) == 0 {
		return errors.NewConfiguration("market.instruments", "at least one instrument is required")
	}
	if _, err := c.ParseInstruments(); err != nil {
		return err
	}
	if c.Book.Depth <= 0 {
		return errors.NewConfiguration("book.depth", "depth must be positive, got %d", c.Book.Depth)
	}
	if c.Book.Spacing <= 0 {
		return errors.NewConfiguration("book.spacing", "spacing must be positive, got %f", c.Book.Spacing)
	}
	if c.Candle.Retention <= 0 {
		return errors.NewConfiguration("candle.retention", "retention must be positive, got %d", c.Candle.Retention)
	}
	for _, name := range c.Candle.Intervals {
		if !interval.IsValidInterval(name) {
			return errors.NewConfiguration("candle.intervals", "unsupported interval %q", name)
		}
	}
	if c.Alert.HistoryCap <= 0 {
		return errors.NewConfiguration("alert.history_cap", "history cap must be positive, got %d", c.Alert.HistoryCap)
	}
	if c.Subscriber.QueueSize <= 0 {
		return errors.NewConfiguration("subscriber.queue_size", "queue size must be positive, got %d", c.Subscriber.QueueSize)
	}
	if c.Feed.Enabled && c.Feed.IntervalMillis <= 0 {
		return errors.NewConfiguration("feed.interval_millis", "feed interval must be positive, got %d", c.Feed.IntervalMillis)
	}
	return nil
}

// ParseInstruments converts the id:tickSize entries into instruments.
func (c *Config) ParseInstruments() ([]marketv1.Instrument, error) {
	instruments := make([]marketv1.Instrument, 0, len(c.Market.Instruments))
	for _, entry := range c.Market.Instruments {
		id, tickSizeRaw, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found || id == "" {
			return nil, errors.NewConfiguration("market.instruments", "malformed instrument entry %q, want id:tickSize", entry)
		}
		tickSize, err := strconv.ParseFloat(strings.TrimSpace(tickSizeRaw), 64)
		if err != nil || tickSize <= 0 {
			return nil, errors.NewConfiguration("market.instruments", "invalid tick size in entry %q", entry)
		}

		instrument := marketv1.Instrument{ID: id, TickSize: tickSize}
		if base, quote, split := strings.Cut(id, "-"); split {
			instrument.BaseSymbol = base
			instrument.QuoteSymbol = quote
		}
		if err := instrument.Validate(); err != nil {
			return nil, err
		}
		instruments = append(instruments, instrument)
	}
	return instruments, nil
}
