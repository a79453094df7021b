package suite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/pipecheck/internal/pipeline"
)

// jobStatus is the document a test harness writes after the runner reports
// the job's terminal state.
type jobStatus struct {
	State string `yaml:"state"`
}

// statusFileResult adapts a harness-written status file to pipeline.Result.
type statusFileResult struct {
	state pipeline.JobState
}

func (r statusFileResult) CurrentState() pipeline.JobState { return r.state }

// readStatusFile loads the job state recorded at path.
func readStatusFile(path string) (pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job status: %w", err)
	}

	var status jobStatus
	if err := yaml.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("decode job status %s: %w", path, err)
	}

	state := pipeline.JobState(status.State)
	if !state.Valid() {
		return nil, fmt.Errorf("job status %s reports unknown state %q", path, status.State)
	}
	return statusFileResult{state: state}, nil
}
