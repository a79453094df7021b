// Package source reads pipeline output as a sequence of text records.
//
// A Source opens a path and yields its lines one at a time. Faults are
// reported through the typed errors in pkg/errors so callers can decide
// what is worth retrying: a *TransientError is expected to clear on a
// fresh attempt, a *PermanentError never will.
package source

import (
	"bufio"
	"context"
	"errors"
	"io"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

// maxRecordBytes caps the length of a single record. Pipeline output is
// line-oriented text; 16MiB leaves ample headroom over any sane record
// while still bounding memory per line.
const maxRecordBytes = 16 * 1024 * 1024

// newRecordScanner returns a line scanner sized for records up to
// maxRecordBytes rather than bufio's 64KiB default.
func newRecordScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	return scanner
}

// classifyScanError types a failure that stopped line scanning. An
// over-long record is malformed content no retry can fix; anything else is
// a storage fault worth a fresh attempt.
func classifyScanError(path string, err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return pcerrors.NewPermanentError(path, err)
	}
	return pcerrors.NewTransientError(path, err)
}

// RecordReader iterates over the text records behind one opened path.
// Callers must Close it on every exit path; Close is idempotent.
type RecordReader interface {
	// Next advances to the next record, returning false at end of input or
	// on failure. After Next returns false, Err distinguishes the two.
	Next() bool

	// Record returns the record Next advanced to, without its trailing
	// newline.
	Record() string

	// Err returns the fault that stopped iteration, or nil on clean end of
	// input.
	Err() error

	// Close releases the underlying handle.
	Close() error
}

// Source opens a path for record iteration. Implementations decide what the
// path means (local shard glob, remote object).
type Source interface {
	Open(ctx context.Context, path string) (RecordReader, error)
}

// ReadAll opens path on src and drains it into memory, guaranteeing the
// reader is closed whether the read finishes or fails partway. Each call
// performs a fresh read; nothing is reused from prior attempts.
func ReadAll(ctx context.Context, src Source, path string) ([]string, error) {
	reader, err := src.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var records []string
	for reader.Next() {
		records = append(records, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
