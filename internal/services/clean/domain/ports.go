package domain

import (
	"context"

	"rapih/internal/core/clean"
)

// ServicePort is the clean service contract
type ServicePort interface {
	Clean(ctx context.Context, in CleanRequest) (Record, error)
	Explain(ctx context.Context, in CleanRequest) (Record, error)
	CleanBatch(ctx context.Context, in BatchRequest) (BatchResult, error)
	Profiles() []ProfileInfo
	Lexicon() LexiconInfo
}

// ValuesPort cleans already decoded values in order with bounded
// parallelism. Non string values yield invalid_input records.
type ValuesPort interface {
	CleanValues(ctx context.Context, profile clean.Profile, values []any, explain bool) ([]Record, error)
}
