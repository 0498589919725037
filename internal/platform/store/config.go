package store

import (
	"time"

	"rapih/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures Postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // ping attempts before Open gives up
	PingTimeout    time.Duration // per attempt
}

// CHConfig configures ClickHouse connectivity
type CHConfig struct {
	Enabled      bool
	URL          string
	Database     string
	MaxOpenConns int
}

// FromEnv reads STORE_PG_* and STORE_CH_*. A backend is enabled when its
// ENABLED flag is set; its URL is then required.
func FromEnv(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("STORE_PG_")
	ch := cfg.Prefix("STORE_CH_")

	c := Config{AppName: appName}
	c.PG = PGConfig{
		Enabled:        pg.MayBool("ENABLED", false),
		MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
		LogSQL:         pg.MayBool("LOG_SQL", false),
		SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
		ConnectRetries: pg.MayInt("CONNECT_RETRIES", 10),
		PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
	if c.PG.Enabled {
		c.PG.URL = pg.MustString("URL")
	}
	c.CH = CHConfig{
		Enabled:      ch.MayBool("ENABLED", false),
		Database:     ch.MayString("DATABASE", ""),
		MaxOpenConns: ch.MayInt("MAX_OPEN_CONNS", 4),
	}
	if c.CH.Enabled {
		c.CH.URL = ch.MustString("URL")
	}
	return c
}
