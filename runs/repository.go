package runs

// This file contains the run repository: naming, persistence, enumeration
// and deletion of profiling run files in a single storage directory.

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/perfgo/profstore/model"
)

// Repository persists profiling runs as one file per run under a
// configured storage root. Filenames follow
// {run_id}[.{namespace}].{suffix}; the suffix marks files the repository
// owns and is the only thing distinguishing them from unrelated files in
// the same directory.
type Repository struct {
	logger zerolog.Logger
	fs     afero.Fs
	root   string
	suffix string
	codec  Codec
}

// New returns a repository rooted at root. An empty root resolves run
// files relative to the process working directory.
func New(logger zerolog.Logger, fs afero.Fs, root, suffix string) *Repository {
	return &Repository{
		logger: logger,
		fs:     fs,
		root:   root,
		suffix: suffix,
		codec:  JSONCodec{},
	}
}

// Save persists payload and returns the run id used. When runID is empty
// a random one is generated. An existing file for the same
// (runID, namespace) pair is overwritten. A failed write is logged and
// reported as a *WriteError alongside the run id, so best-effort callers
// may keep the id and move on while strict callers fail.
func (r *Repository) Save(payload model.Payload, namespace, runID string) (string, error) {
	if strings.Contains(runID, ".") || strings.Contains(namespace, ".") {
		return "", ErrInvalidID
	}

	if runID == "" {
		id, err := generateRunID()
		if err != nil {
			return "", fmt.Errorf("failed to generate run id: %w", err)
		}
		runID = id
	}

	data, err := r.codec.Encode(payload)
	if err != nil {
		return runID, fmt.Errorf("failed to encode payload: %w", err)
	}

	path := r.runFile(runID, namespace)
	if err := afero.WriteFile(r.fs, path, data, 0644); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Failed to write run file")
		return runID, &WriteError{Path: path, Err: err}
	}

	r.logger.Debug().
		Str("id", runID).
		Str("namespace", namespace).
		Str("path", path).
		Msg("Saved run")
	return runID, nil
}

// Get loads the run stored for (runID, namespace) plus a human-readable
// description of it. A missing run is a normal outcome: the payload is
// nil and the description names the unknown id. An existing file that
// fails to read is an I/O error, and one that fails to decode is
// reported as a *CorruptPayloadError.
func (r *Repository) Get(runID, namespace string) (model.Payload, string, error) {
	path := r.runFile(runID, namespace)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to read run file %s: %w", path, err)
		}
		r.logger.Warn().Str("id", runID).Str("path", path).Msg("Run file does not exist")
		return nil, fmt.Sprintf("Invalid Run Id = %s", runID), nil
	}

	payload, err := r.codec.Decode(data)
	if err != nil {
		return nil, "", &CorruptPayloadError{Path: path, Err: err}
	}

	return payload, fmt.Sprintf("Run (Namespace=%s)", namespace), nil
}

// Delete removes the file for (runID, namespace) and reports whether a
// file was removed. A name that does not pass the managed-suffix check is
// left untouched: the repository never unlinks files it does not own,
// even if an unsafe id/namespace combination produced a suffix-less name.
func (r *Repository) Delete(runID, namespace string) bool {
	path := r.runFile(runID, namespace)
	if !r.managed(filepath.Base(path)) {
		return false
	}

	if err := r.fs.Remove(path); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete run file")
		return false
	}

	r.logger.Debug().Str("id", runID).Str("path", path).Msg("Deleted run")
	return true
}

// DeleteAll sweeps every managed run file from the storage root,
// non-recursively. Files that fail to unlink are logged and skipped so a
// single locked or vanished file never aborts the sweep; everything not
// matching the managed pattern is left untouched.
func (r *Repository) DeleteAll() error {
	entries, err := afero.ReadDir(r.fs, r.scanRoot())
	if err != nil {
		return fmt.Errorf("failed to scan storage root: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !r.managed(entry.Name()) {
			continue
		}
		path := filepath.Join(r.scanRoot(), entry.Name())
		if err := r.fs.Remove(path); err != nil {
			r.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete run file, continuing sweep")
			continue
		}
		r.logger.Debug().Str("path", path).Msg("Deleted run file")
	}
	return nil
}

// List enumerates every managed run file in the storage root, newest
// first; files with identical modification times order by full path
// ascending so listings are reproducible. Run id and namespace are the
// first and second dot-segments of the basename, which means runs saved
// with an empty namespace list with the suffix as their namespace.
func (r *Repository) List() ([]model.RunListing, error) {
	entries, err := afero.ReadDir(r.fs, r.scanRoot())
	if err != nil {
		return nil, fmt.Errorf("failed to scan storage root: %w", err)
	}

	listings := make([]model.RunListing, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+r.suffix) {
			continue
		}
		parts := strings.Split(entry.Name(), ".")
		if len(parts) < 2 {
			continue
		}
		listings = append(listings, model.RunListing{
			RunID:      parts[0],
			Namespace:  parts[1],
			ModifiedAt: entry.ModTime(),
			SizeBytes:  entry.Size(),
			FilePath:   filepath.Join(r.scanRoot(), entry.Name()),
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		if !listings[i].ModifiedAt.Equal(listings[j].ModifiedAt) {
			return listings[i].ModifiedAt.After(listings[j].ModifiedAt)
		}
		return listings[i].FilePath < listings[j].FilePath
	})
	return listings, nil
}

// runFile composes the storage path for a run. An empty namespace, or one
// equal to the suffix, collapses to the two-segment form. Sanitization
// applies to the fully composed basename so crafted ids can never escape
// the storage root.
func (r *Repository) runFile(runID, namespace string) string {
	base := runID + "." + r.suffix
	if namespace != "" && namespace != r.suffix {
		base = runID + "." + namespace + "." + r.suffix
	}
	base = sanitizeBaseName(base)
	if r.root == "" {
		return base
	}
	return filepath.Join(r.root, base)
}

// managed reports whether base names a repository-owned file: at least
// two dot-segments, the last equal to the configured suffix.
func (r *Repository) managed(base string) bool {
	parts := strings.Split(base, ".")
	return len(parts) >= 2 && parts[len(parts)-1] == r.suffix
}

func (r *Repository) scanRoot() string {
	if r.root == "" {
		return "."
	}
	return r.root
}

// sanitizeBaseName strips path separators and NUL bytes from a composed
// basename before it reaches the filesystem.
func sanitizeBaseName(name string) string {
	return strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', 0:
			return -1
		}
		return c
	}, name)
}

// generateRunID returns 16 random bytes, hex encoded. Hex ids never
// contain the '.' delimiter used by the naming scheme.
func generateRunID() (string, error) {
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(idBytes), nil
}
