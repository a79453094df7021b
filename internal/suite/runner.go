package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/pipecheck/internal/config"
	"github.com/alexisbeaulieu97/pipecheck/internal/logger"
	"github.com/alexisbeaulieu97/pipecheck/internal/matcher"
	"github.com/alexisbeaulieu97/pipecheck/internal/pipeline"
	"github.com/alexisbeaulieu97/pipecheck/internal/retry"
	"github.com/alexisbeaulieu97/pipecheck/internal/source"
	"github.com/alexisbeaulieu97/pipecheck/internal/verify"
)

// Runner executes the checks of a parsed suite sequentially. Each check
// owns all of its state, so distinct Runner calls are independent.
type Runner struct {
	log *logger.Logger
}

// NewRunner builds a Runner. A nil logger discards diagnostics.
func NewRunner(log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{log: log}
}

// Run executes every check in the suite and aggregates a summary. A failed
// check never stops the suite; CI wants the full picture.
func (r *Runner) Run(ctx context.Context, suite *config.Suite) *Summary {
	started := time.Now()
	summary := &Summary{}

	for _, check := range suite.Checks {
		checkCtx := ctx
		var cancel context.CancelFunc
		if suite.Settings.TimeoutSeconds > 0 {
			checkCtx, cancel = context.WithTimeout(ctx, time.Duration(suite.Settings.TimeoutSeconds)*time.Second)
		}

		result := r.runCheck(checkCtx, check)
		summary.Add(result)

		if cancel != nil {
			cancel()
		}

		r.log.WithFields(map[string]any{
			"check":    result.CheckID,
			"status":   string(result.Status),
			"duration": result.Duration.String(),
		}).Debug("check finished")
	}

	summary.Duration = time.Since(started)
	return summary
}

func (r *Runner) runCheck(ctx context.Context, check config.Check) CheckResult {
	started := time.Now()
	result := CheckResult{CheckID: check.ID, Type: check.Type}

	m, candidate, err := r.buildMatcher(check)
	if err == nil {
		var ok bool
		ok, err = m.Matches(ctx, candidate)
		if err == nil {
			if ok {
				result.Status = StatusSatisfied
				result.Message = "check satisfied"
			} else {
				result.Status = StatusMismatched
				result.Message = matcher.MismatchMessage(m, candidate)
			}
			result.Duration = time.Since(started)
			return result
		}
	}

	result.Status = StatusErrored
	result.Err = err
	result.Message = err.Error()
	result.Duration = time.Since(started)
	return result
}

// buildMatcher turns a configured check into a matcher plus the candidate
// value to assess.
func (r *Runner) buildMatcher(check config.Check) (matcher.Matcher, any, error) {
	switch check.Type {
	case config.TypeFileChecksum:
		cfg := check.FileChecksum

		var src source.Source = source.NewFileSource()
		if cfg.Backend == "http" {
			src = source.NewHTTPSource(nil)
		}

		policy := retry.DefaultPolicy
		if cfg.Retries > 0 {
			policy.MaxAttempts = cfg.Retries
		}

		v := verify.NewFileChecksum(verify.FileChecksumConfig{
			Path:             cfg.Path,
			ExpectedChecksum: cfg.Checksum,
			Source:           src,
			Policy:           policy,
			Logger:           r.log.WithFields(map[string]any{"check": check.ID}),
		})
		return v, nil, nil

	case config.TypePipelineState:
		cfg := check.PipelineState

		result, err := readStatusFile(cfg.StatusFile)
		if err != nil {
			return nil, nil, err
		}
		return verify.NewState(pipeline.JobState(cfg.State)), result, nil
	}

	// Unreachable for validated suites; config rejects unknown types.
	return nil, nil, fmt.Errorf("unknown check type %q", check.Type)
}
