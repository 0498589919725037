package domain

import "context"

// RunnerPort runs the corpus job
type RunnerPort interface {
	Run(ctx context.Context, in RunInput) (RunStats, error)
}

// SinkPort appends cleaned rows to a secondary store
type SinkPort interface {
	Append(ctx context.Context, rows []CleanRow) error
}
