package source

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

// FileSource reads records from the local filesystem. The path may be a
// single file or a glob matching several shards (e.g. out-*-of-*); shards
// are read in lexicographic path order.
type FileSource struct{}

// NewFileSource returns a filesystem-backed Source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

var _ Source = (*FileSource)(nil)

func (s *FileSource) Open(_ context.Context, path string) (RecordReader, error) {
	shards, err := filepath.Glob(path)
	if err != nil {
		return nil, pcerrors.NewPermanentError(path, err)
	}
	if len(shards) == 0 {
		return nil, pcerrors.NewPermanentError(path, fs.ErrNotExist)
	}
	sort.Strings(shards)

	return &fileReader{path: path, shards: shards}, nil
}

// fileReader iterates the lines of each matched shard in turn. The file
// handle for the current shard is the only one held open at a time.
type fileReader struct {
	path   string
	shards []string

	current *os.File
	scanner *bufio.Scanner
	record  string
	err     error
	closed  bool
}

func (r *fileReader) Next() bool {
	if r.err != nil || r.closed {
		return false
	}

	for {
		if r.scanner == nil {
			if len(r.shards) == 0 {
				return false
			}
			shard := r.shards[0]
			r.shards = r.shards[1:]

			f, err := os.Open(shard)
			if err != nil {
				r.err = classifyFileError(shard, err)
				return false
			}
			r.current = f
			r.scanner = newRecordScanner(f)
		}

		if r.scanner.Scan() {
			r.record = r.scanner.Text()
			return true
		}

		scanErr := r.scanner.Err()
		name := r.current.Name()
		closeErr := r.current.Close()
		r.current = nil
		r.scanner = nil

		if scanErr != nil {
			r.err = classifyScanError(name, scanErr)
			return false
		}
		if closeErr != nil {
			r.err = pcerrors.NewTransientError(name, closeErr)
			return false
		}
	}
}

func (r *fileReader) Record() string { return r.record }

func (r *fileReader) Err() error { return r.err }

func (r *fileReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.current != nil {
		err := r.current.Close()
		r.current = nil
		r.scanner = nil
		return err
	}
	return nil
}

// classifyFileError separates faults no retry can fix from everything else.
func classifyFileError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrInvalid) {
		return pcerrors.NewPermanentError(path, err)
	}
	return pcerrors.NewTransientError(path, err)
}
