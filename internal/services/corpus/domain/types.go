// Package domain holds the corpus job contracts
package domain

import "time"

// Review is a source row. Body is nil for a NULL column.
type Review struct {
	ID   int64
	Body *string
}

// CleanRow is one cleaned review as stored in reviews_clean
type CleanRow struct {
	ReviewID     int64
	Profile      string
	Clean        string
	Dropped      bool
	Tokens       int
	LatinShare   float64
	InvalidInput bool
	RunID        string
	CleanedAt    time.Time
}

// Range bounds review ids. Zero means open on that side; To is inclusive.
type Range struct {
	From int64
	To   int64
}

// RunInput configures a single corpus run
type RunInput struct {
	Range   Range
	Profile string
	// DryRun cleans and counts without writing anywhere
	DryRun bool
	// MaxRows stops the run after this many source rows; 0 is unlimited
	MaxRows int
}

// RunStats summarizes a run
type RunStats struct {
	RunID   string        `json:"run_id"`
	Profile string        `json:"profile"`
	DryRun  bool          `json:"dry_run"`
	Pages   int           `json:"pages"`
	Read    int           `json:"read"`
	Written int64         `json:"written"`
	Sunk    int           `json:"sunk"`
	Dropped int           `json:"dropped"`
	Invalid int           `json:"invalid"`
	LastID  int64         `json:"last_id"`
	Elapsed time.Duration `json:"elapsed"`
}
