// Package suite runs the checks declared in a suite file and aggregates
// their outcomes.
package suite

import (
	"time"
)

// CheckStatus classifies the outcome of one check.
type CheckStatus string

const (
	// StatusSatisfied means the observed value matched the expectation.
	StatusSatisfied CheckStatus = "satisfied"
	// StatusMismatched means the check ran but the observed value differed.
	StatusMismatched CheckStatus = "mismatched"
	// StatusErrored means the check could not be carried out, e.g. the
	// output path could not be read after exhausting retries.
	StatusErrored CheckStatus = "errored"
)

// CheckResult captures the outcome of running a single check.
type CheckResult struct {
	CheckID  string
	Type     string
	Status   CheckStatus
	Message  string
	Err      error
	Duration time.Duration
}

// Summary aggregates check results and counts.
type Summary struct {
	Total      int
	Satisfied  int
	Mismatched int
	Errored    int
	Duration   time.Duration
	Results    []CheckResult
}

// Add appends a result and updates counters.
func (s *Summary) Add(result CheckResult) {
	s.Results = append(s.Results, result)
	s.Total++
	switch result.Status {
	case StatusSatisfied:
		s.Satisfied++
	case StatusMismatched:
		s.Mismatched++
	case StatusErrored:
		s.Errored++
	}
}

// AllSatisfied reports whether every check passed.
func (s *Summary) AllSatisfied() bool {
	return s.Total > 0 && s.Satisfied == s.Total
}

// ExitCode maps the summary onto the CLI contract: 0 all satisfied,
// 1 at least one mismatch, 3 at least one infrastructure error. Errors win
// over mismatches because they mean the verdict is unknown.
func (s *Summary) ExitCode() int {
	if s.Errored > 0 {
		return 3
	}
	if s.Mismatched > 0 {
		return 1
	}
	return 0
}
