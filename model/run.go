package model

import "time"

// Payload is the profiling data attached to a run. The repository never
// interprets its contents: it is an arbitrary tree of string-keyed
// mappings, sequences, strings and numbers, stored and returned as-is.
// Numbers decode as float64, matching the JSON encoding on disk.
type Payload map[string]any

// RunListing describes one persisted run as recovered from the storage
// directory, without decoding its payload.
type RunListing struct {
	// RunID is the first dot-segment of the file basename.
	RunID string `json:"run_id"`
	// Namespace is the second dot-segment of the file basename. Runs
	// saved without a namespace list with the repository suffix here.
	Namespace string `json:"namespace"`
	// ModifiedAt is the modification time of the backing file.
	ModifiedAt time.Time `json:"modified_at"`
	// SizeBytes is the size of the backing file.
	SizeBytes int64 `json:"size_bytes"`
	// FilePath is the full path of the backing file.
	FilePath string `json:"file_path"`
}
