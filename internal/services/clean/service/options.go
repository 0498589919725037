package service

import (
	"runtime"

	"rapih/internal/core/clean"
	"rapih/internal/platform/config"
)

// Options tunes the service
type Options struct {
	// Workers bounds batch parallelism; 0 means GOMAXPROCS
	Workers int
	// MaxBatch caps texts per batch request; 0 means 1000
	MaxBatch int
	// DefaultProfile applies when a request names none
	DefaultProfile clean.Profile
	// Service names the binary in LexiconInfo
	Service string
}

// FromConfig reads CORE_CLEAN_WORKERS, CORE_CLEAN_MAX_BATCH and
// CORE_CLEAN_PROFILE. An unknown profile name panics at startup.
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CLEAN_")
	name := c.MayEnum("PROFILE", clean.Model.String(), "tokenizer", "analysis", "model")
	p, _ := clean.ParseProfile(name)
	return Options{
		Workers:        c.MayInt("WORKERS", 0),
		MaxBatch:       c.MayInt("MAX_BATCH", 1000),
		DefaultProfile: p,
	}
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxBatch <= 0 {
		o.MaxBatch = 1000
	}
	if !o.DefaultProfile.Valid() {
		o.DefaultProfile = clean.Model
	}
	if o.Service == "" {
		o.Service = "rapih"
	}
	return o
}
