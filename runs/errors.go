package runs

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned by Save when a caller-supplied run id or
// namespace contains a '.', which would corrupt the dot-delimited naming
// scheme that List relies on to recover ids from filenames.
var ErrInvalidID = errors.New("run id and namespace must not contain '.'")

// WriteError reports a failed attempt to persist a run file. Save returns
// the run id alongside it, so callers choose between best-effort storage
// and failing hard.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write run file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CorruptPayloadError reports that an existing run file could not be
// decoded. Distinct from a missing run, which Get treats as a normal
// outcome rather than an error.
type CorruptPayloadError struct {
	Path string
	Err  error
}

func (e *CorruptPayloadError) Error() string {
	return fmt.Sprintf("corrupt run file %s: %v", e.Path, e.Err)
}

func (e *CorruptPayloadError) Unwrap() error { return e.Err }
