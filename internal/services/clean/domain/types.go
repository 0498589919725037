// Package domain holds the clean service contracts and DTOs shared by the
// HTTP API, the batch CLI and the corpus job
package domain

import (
	"encoding/json"

	"rapih/internal/core/clean"
	"rapih/internal/core/lexicon"
	"rapih/internal/core/version"
)

// CleanRequest is one text to normalize
type CleanRequest struct {
	Text    string `json:"text" validate:"max=20000" example:"Barangnyaaa bagusss bangett!! wkwkwk"`
	Profile string `json:"profile,omitempty" validate:"omitempty,profile" example:"model"`
}

// BatchRequest is many texts under one profile. Items are raw JSON so a
// non string item becomes an invalid_input record instead of failing the batch.
type BatchRequest struct {
	Texts   []json.RawMessage `json:"texts" validate:"required,min=1"`
	Profile string            `json:"profile,omitempty" validate:"omitempty,profile"`
	Explain bool              `json:"explain,omitempty"`
}

// Record is the result for one input
type Record struct {
	Text         string             `json:"text"`
	Clean        string             `json:"clean"`
	Dropped      bool               `json:"dropped"`
	Tokens       int                `json:"tokens"`
	LatinShare   float64            `json:"latin_share"`
	InvalidInput bool               `json:"invalid_input,omitempty"`
	Error        string             `json:"error,omitempty"`
	Trace        []clean.TraceEntry `json:"trace,omitempty"`
}

// BatchResult is the outcome of a batch, records in input order
type BatchResult struct {
	BatchID string   `json:"batch_id"`
	Profile string   `json:"profile"`
	Dropped int      `json:"dropped"`
	Invalid int      `json:"invalid"`
	Records []Record `json:"records"`
}

// ProfileInfo describes one profile's stage table
type ProfileInfo struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

// LexiconInfo reports the loaded lexicon and the build serving it
type LexiconInfo struct {
	Stats lexicon.Stats     `json:"stats"`
	Build version.BuildInfo `json:"build"`
}
