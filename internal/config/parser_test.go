package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validSuite = `
version: "1.0"
name: wordcount e2e
checks:
  - id: output_checksum
    type: file_checksum
    path: /tmp/out-*-of-*
    checksum: 40b904fd8852297daeaeb426b1bca46fd2454aa3
    retries: 4
  - id: job_state
    type: pipeline_state
    status_file: /tmp/job-status.yaml
    state: DONE
`

func TestParseSuiteValid(t *testing.T) {
	t.Parallel()

	suite, err := ParseSuite(writeSuite(t, validSuite))
	require.NoError(t, err)

	require.Equal(t, "wordcount e2e", suite.Name)
	require.Len(t, suite.Checks, 2)

	first := suite.Checks[0]
	require.Equal(t, TypeFileChecksum, first.Type)
	require.NotNil(t, first.FileChecksum)
	require.Nil(t, first.PipelineState)
	require.Equal(t, "/tmp/out-*-of-*", first.FileChecksum.Path)
	require.Equal(t, 4, first.FileChecksum.Retries)

	second := suite.Checks[1]
	require.Equal(t, TypePipelineState, second.Type)
	require.NotNil(t, second.PipelineState)
	require.Nil(t, second.FileChecksum)
	require.Equal(t, "DONE", second.PipelineState.State)
}

func TestParseSuiteMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var parseErr *pcerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseSuiteMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, "version: [unclosed"))
	require.Error(t, err)

	var parseErr *pcerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseSuiteRejectsBadChecksum(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, `
version: "1.0"
name: bad digest
checks:
  - id: output_checksum
    type: file_checksum
    path: /tmp/out
    checksum: not-a-digest
`))
	require.Error(t, err)

	var validationErr *pcerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseSuiteRejectsUnknownState(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, `
version: "1.0"
name: bad state
checks:
  - id: job_state
    type: pipeline_state
    status_file: /tmp/status.yaml
    state: EXPLODED
`))
	require.Error(t, err)

	var validationErr *pcerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseSuiteRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, `
version: "1.0"
name: duplicates
checks:
  - id: same
    type: pipeline_state
    status_file: /tmp/a.yaml
  - id: same
    type: pipeline_state
    status_file: /tmp/b.yaml
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate check id")
}

func TestParseSuiteRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, `
version: "1.0"
name: unknown type
checks:
  - id: mystery
    type: teleport
`))
	require.Error(t, err)

	var validationErr *pcerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseSuiteRequiresChecks(t *testing.T) {
	t.Parallel()

	_, err := ParseSuite(writeSuite(t, `
version: "1.0"
name: empty
checks: []
`))
	require.Error(t, err)
}
