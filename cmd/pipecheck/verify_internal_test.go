package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pipecheck/internal/config"
	"github.com/alexisbeaulieu97/pipecheck/internal/logger"
	"github.com/alexisbeaulieu97/pipecheck/internal/suite"
	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

func restoreVerifyDeps(t *testing.T) {
	t.Helper()

	origStderr := stderrWriter
	origParse := parseSuiteFunc
	origLogger := newLoggerFunc
	origRun := runSuiteFunc
	origTable := printTableOutputFunc
	origJSON := printJSONOutputFunc

	t.Cleanup(func() {
		stderrWriter = origStderr
		parseSuiteFunc = origParse
		newLoggerFunc = origLogger
		runSuiteFunc = origRun
		printTableOutputFunc = origTable
		printJSONOutputFunc = origJSON
	})

	newLoggerFunc = func(opts logger.Options) (*logger.Logger, error) {
		opts.Writer = io.Discard
		opts.Pretty = false
		return logger.New(opts)
	}
}

func stubSummary(status suite.CheckStatus) *suite.Summary {
	s := &suite.Summary{Duration: time.Second}
	s.Add(suite.CheckResult{CheckID: "output", Type: config.TypeFileChecksum, Status: status, Message: "msg", Duration: time.Second})
	return s
}

func TestRunVerifyInternal_InvalidSuite(t *testing.T) {
	restoreVerifyDeps(t)

	var stderr bytes.Buffer
	stderrWriter = &stderr
	parseSuiteFunc = func(string) (*config.Suite, error) {
		return nil, pcerrors.NewParseError("broken.yaml", 3, errors.New("bad yaml"))
	}

	code, err := runVerifyInternal(verifyOptions{SuitePath: "broken.yaml"})
	require.NoError(t, err)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "Invalid suite file")
}

func TestRunVerifyInternal_ValidationFailureAlsoExitsTwo(t *testing.T) {
	restoreVerifyDeps(t)

	var stderr bytes.Buffer
	stderrWriter = &stderr
	parseSuiteFunc = func(string) (*config.Suite, error) {
		return nil, pcerrors.NewValidationError("checks[0].checksum", "bad digest", nil)
	}

	code, err := runVerifyInternal(verifyOptions{SuitePath: "suite.yaml"})
	require.NoError(t, err)
	require.Equal(t, 2, code)
}

func TestRunVerifyInternal_AllSatisfied(t *testing.T) {
	restoreVerifyDeps(t)

	parseSuiteFunc = func(string) (*config.Suite, error) {
		return &config.Suite{Version: "1.0", Name: "ok"}, nil
	}
	runSuiteFunc = func(context.Context, *logger.Logger, *config.Suite) *suite.Summary {
		return stubSummary(suite.StatusSatisfied)
	}

	var tableCalls int
	printTableOutputFunc = func(*suite.Summary, bool) { tableCalls++ }

	code, err := runVerifyInternal(verifyOptions{SuitePath: "suite.yaml"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, 1, tableCalls)
}

func TestRunVerifyInternal_MismatchExitsOne(t *testing.T) {
	restoreVerifyDeps(t)

	parseSuiteFunc = func(string) (*config.Suite, error) {
		return &config.Suite{Version: "1.0", Name: "mismatch"}, nil
	}
	runSuiteFunc = func(context.Context, *logger.Logger, *config.Suite) *suite.Summary {
		return stubSummary(suite.StatusMismatched)
	}
	printTableOutputFunc = func(*suite.Summary, bool) {}

	code, err := runVerifyInternal(verifyOptions{SuitePath: "suite.yaml"})
	require.NoError(t, err)
	require.Equal(t, 1, code)
}

func TestRunVerifyInternal_InfrastructureErrorExitsThree(t *testing.T) {
	restoreVerifyDeps(t)

	parseSuiteFunc = func(string) (*config.Suite, error) {
		return &config.Suite{Version: "1.0", Name: "errored"}, nil
	}
	runSuiteFunc = func(context.Context, *logger.Logger, *config.Suite) *suite.Summary {
		return stubSummary(suite.StatusErrored)
	}
	printTableOutputFunc = func(*suite.Summary, bool) {}

	code, err := runVerifyInternal(verifyOptions{SuitePath: "suite.yaml"})
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestRunVerifyInternal_JSONOutputSelected(t *testing.T) {
	restoreVerifyDeps(t)

	parseSuiteFunc = func(string) (*config.Suite, error) {
		return &config.Suite{Version: "1.0", Name: "json"}, nil
	}
	runSuiteFunc = func(context.Context, *logger.Logger, *config.Suite) *suite.Summary {
		return stubSummary(suite.StatusSatisfied)
	}

	var jsonCalls, tableCalls int
	printJSONOutputFunc = func(*suite.Summary, string, string) { jsonCalls++ }
	printTableOutputFunc = func(*suite.Summary, bool) { tableCalls++ }

	_, err := runVerifyInternal(verifyOptions{SuitePath: "suite.yaml", JSON: true})
	require.NoError(t, err)
	require.Equal(t, 1, jsonCalls)
	require.Equal(t, 0, tableCalls)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "exactly10!", truncate("exactly10!", 10))
	require.Equal(t, "0123456...", truncate("0123456789x", 10))
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make([]string, 0)
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	require.Contains(t, names, "verify")
	require.Contains(t, names, "version")
}

func TestVersionCommandOutput(t *testing.T) {
	t.Parallel()

	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.RunE(cmd, nil))
	require.Contains(t, out.String(), "pipecheck")
}
