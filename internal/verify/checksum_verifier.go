// Package verify implements the end-to-end test verifiers: one for the
// terminal state a pipeline job reports, one for the content the job wrote.
package verify

import (
	"context"
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/pipecheck/internal/checksum"
	"github.com/alexisbeaulieu97/pipecheck/internal/logger"
	"github.com/alexisbeaulieu97/pipecheck/internal/matcher"
	"github.com/alexisbeaulieu97/pipecheck/internal/retry"
	"github.com/alexisbeaulieu97/pipecheck/internal/source"
	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

// FileChecksumConfig configures a FileChecksumVerifier.
type FileChecksumConfig struct {
	// Path names the output to read: a file, a shard glob, or a URL,
	// depending on Source.
	Path string

	// ExpectedChecksum is the hex SHA-1 digest the output must hash to.
	ExpectedChecksum string

	// Source supplies the records behind Path. Defaults to the local
	// filesystem.
	Source source.Source

	// Policy bounds the retry loop around the read. A zero MaxAttempts
	// falls back to retry.DefaultPolicy.
	Policy retry.Policy

	// Logger receives the per-read info line. Nil discards it.
	Logger *logger.Logger
}

// FileChecksumVerifier checks that the content under a path hashes to an
// expected digest. Reads are retried on transient storage faults; the
// digest is order-independent with respect to shard and record order.
//
// A verifier instance is meant to be driven by one test at a time; it keeps
// the outcome of its last read for mismatch diagnostics.
type FileChecksumVerifier struct {
	path     string
	expected string
	src      source.Source
	policy   retry.Policy
	log      *logger.Logger

	actual      string
	recordCount int
	verified    bool
}

// NewFileChecksum builds a FileChecksumVerifier from cfg.
func NewFileChecksum(cfg FileChecksumConfig) *FileChecksumVerifier {
	src := cfg.Source
	if src == nil {
		src = source.NewFileSource()
	}
	policy := cfg.Policy
	if policy.MaxAttempts == 0 {
		policy = retry.DefaultPolicy
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &FileChecksumVerifier{
		path:     cfg.Path,
		expected: cfg.ExpectedChecksum,
		src:      src,
		policy:   policy,
		log:      log,
	}
}

var _ matcher.Matcher = (*FileChecksumVerifier)(nil)

// Matches reads the records under the configured path and compares their
// digest to the expected checksum. The candidate is ignored: the
// expectation is entirely about the stored output, not the job handle the
// assertion framework passes in.
//
// Transient faults are retried per the policy; a permanent fault or an
// exhausted budget is returned as an error, which is an infrastructure
// failure rather than a mismatch.
func (v *FileChecksumVerifier) Matches(ctx context.Context, _ any) (bool, error) {
	records, err := retry.Do(ctx, v.policy, pcerrors.IsTransient, func(ctx context.Context) ([]string, error) {
		return source.ReadAll(ctx, v.src, v.path)
	})
	if err != nil {
		return false, err
	}

	v.actual = checksum.ChecksumOf(records)
	v.recordCount = len(records)
	v.verified = true

	v.log.WithFields(map[string]any{
		"path":     v.path,
		"records":  v.recordCount,
		"checksum": v.actual,
	}).Info("computed output checksum")

	return v.actual == v.expected, nil
}

// DescribeExpected writes the expected digest.
func (v *FileChecksumVerifier) DescribeExpected(w io.Writer) {
	fmt.Fprintf(w, "expected checksum is %s", v.expected)
}

// DescribeMismatch writes the digest actually computed by the last read.
func (v *FileChecksumVerifier) DescribeMismatch(_ any, w io.Writer) {
	if !v.verified {
		fmt.Fprintf(w, "no checksum was computed for %s", v.path)
		return
	}
	fmt.Fprintf(w, "actual checksum is %s", v.actual)
}

// ActualChecksum returns the digest computed by the last successful read
// and whether one exists yet.
func (v *FileChecksumVerifier) ActualChecksum() (string, bool) {
	return v.actual, v.verified
}

// RecordCount returns how many records the last successful read produced.
func (v *FileChecksumVerifier) RecordCount() int {
	return v.recordCount
}
