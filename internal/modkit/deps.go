package modkit

import (
	"rapih/internal/platform/config"
	"rapih/internal/platform/logger"
	"rapih/internal/platform/store"
)

// Deps is what every module may draw on. PG and CH are nil when the
// backend is disabled.
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  store.TxRunner
	CH  store.Clickhouse
}

// Logger returns Log, or the named root logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
