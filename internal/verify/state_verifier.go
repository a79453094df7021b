package verify

import (
	"context"
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/pipecheck/internal/matcher"
	"github.com/alexisbeaulieu97/pipecheck/internal/pipeline"
)

// DefaultExpectedState is the terminal state a successfully completed job
// reports.
const DefaultExpectedState = pipeline.StateDone

// StateVerifier checks that a pipeline job terminated in an expected state.
// The state query is synchronous and reliable once the job handle exists,
// so there is no retry here.
type StateVerifier struct {
	expected pipeline.JobState
}

// NewState builds a StateVerifier. An empty expected state defaults to
// DefaultExpectedState.
func NewState(expected pipeline.JobState) *StateVerifier {
	if expected == "" {
		expected = DefaultExpectedState
	}
	return &StateVerifier{expected: expected}
}

var _ matcher.Matcher = (*StateVerifier)(nil)

// Matches reports whether candidate's current state equals the expected
// one. The candidate must implement pipeline.Result.
func (v *StateVerifier) Matches(_ context.Context, candidate any) (bool, error) {
	result, ok := candidate.(pipeline.Result)
	if !ok {
		return false, fmt.Errorf("state verifier: candidate %T does not expose a job state", candidate)
	}
	return result.CurrentState() == v.expected, nil
}

// Expected returns the state the verifier requires.
func (v *StateVerifier) Expected() pipeline.JobState {
	return v.expected
}

// DescribeExpected writes the expected terminal state.
func (v *StateVerifier) DescribeExpected(w io.Writer) {
	fmt.Fprintf(w, "expected job to terminate in state %s", v.expected)
}

// DescribeMismatch writes the state the job actually reported.
func (v *StateVerifier) DescribeMismatch(candidate any, w io.Writer) {
	result, ok := candidate.(pipeline.Result)
	if !ok {
		fmt.Fprintf(w, "candidate %T does not expose a job state", candidate)
		return
	}
	fmt.Fprintf(w, "job terminated in state %s", result.CurrentState())
}
