// Package matcher defines the assertion contract verifiers plug into.
//
// A Matcher assesses a candidate value against an expectation and can
// describe both the expectation and an observed mismatch for test reports.
// Matches returning an error means the assessment itself could not be
// carried out (an infrastructure failure), which callers must keep distinct
// from a negative match.
package matcher

import (
	"context"
	"io"
	"strings"
)

// Matcher is implemented by every verifier in this module.
type Matcher interface {
	// Matches reports whether candidate satisfies the expectation. A
	// returned error is an infrastructure failure, not a mismatch.
	Matches(ctx context.Context, candidate any) (bool, error)

	// DescribeExpected writes a human-readable statement of the expectation.
	DescribeExpected(w io.Writer)

	// DescribeMismatch writes a human-readable statement of what was
	// actually observed for candidate. Only meaningful after Matches
	// returned false.
	DescribeMismatch(candidate any, w io.Writer)
}

// MismatchMessage runs both describe hooks and joins them into a single
// assertion-failure message.
func MismatchMessage(m Matcher, candidate any) string {
	var b strings.Builder
	m.DescribeExpected(&b)
	b.WriteString("; ")
	m.DescribeMismatch(candidate, &b)
	return b.String()
}
