package module

import (
	"time"

	"rapih/internal/core/clean"
	"rapih/internal/platform/config"
)

// Options configures the corpus module
type Options struct {
	PageSize         int
	Profile          clean.Profile
	Sink             bool
	StatementTimeout time.Duration
}

// FromConfig reads the CORE_CORPUS_ keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CORPUS_")
	p, _ := clean.ParseProfile(c.MayEnum("PROFILE", clean.Model.String(), "tokenizer", "analysis", "model"))
	return Options{
		PageSize:         c.MayInt("PAGE_SIZE", 500),
		Profile:          p,
		Sink:             c.MayBool("SINK", true),
		StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 30*time.Second),
	}
}
