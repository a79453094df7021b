package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pipecheck/internal/matcher"
	"github.com/alexisbeaulieu97/pipecheck/internal/pipeline"
)

type fakeResult struct {
	state pipeline.JobState
}

func (r fakeResult) CurrentState() pipeline.JobState { return r.state }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStateVerifierMatchesExpectedState(t *testing.T) {
	t.Parallel()

	v := NewState(pipeline.StateDone)

	ok, err := v.Matches(context.Background(), fakeResult{state: pipeline.StateDone})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = v.Matches(context.Background(), fakeResult{state: pipeline.StateFailed})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStateVerifierDefaultsToDone(t *testing.T) {
	t.Parallel()

	v := NewState("")
	require.Equal(t, pipeline.StateDone, v.Expected())

	ok, err := v.Matches(context.Background(), fakeResult{state: pipeline.StateDone})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStateVerifierMismatchDescribesBothStates(t *testing.T) {
	t.Parallel()

	v := NewState(pipeline.StateDone)
	msg := matcher.MismatchMessage(v, fakeResult{state: pipeline.StateCancelled})
	require.Contains(t, msg, string(pipeline.StateDone))
	require.Contains(t, msg, string(pipeline.StateCancelled))
}

func TestStateVerifierRejectsForeignCandidate(t *testing.T) {
	t.Parallel()

	v := NewState(pipeline.StateDone)
	_, err := v.Matches(context.Background(), "not a job result")
	require.Error(t, err)
}
