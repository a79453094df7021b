package config

import (
	"gopkg.in/yaml.v3"
)

// Check types accepted in a suite file.
const (
	TypeFileChecksum  = "file_checksum"
	TypePipelineState = "pipeline_state"
)

// Suite represents a full verification suite document.
type Suite struct {
	Version     string   `yaml:"version" validate:"required,semver"`
	Name        string   `yaml:"name" validate:"required,min=1,max=100"`
	Description string   `yaml:"description,omitempty"`
	Settings    Settings `yaml:"settings,omitempty"`
	Checks      []Check  `yaml:"checks" validate:"required,min=1,dive"`
}

// Settings holds suite-wide execution parameters.
type Settings struct {
	// TimeoutSeconds bounds each check's wall-clock time, retries included.
	TimeoutSeconds int `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=86400"`
	// LogLevel overrides the CLI default for this suite.
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
}

// Check describes one verification to run against a finished pipeline job.
type Check struct {
	ID   string `yaml:"id" validate:"required,check_id"`
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type" validate:"required,oneof=file_checksum pipeline_state"`

	FileChecksum  *FileChecksumCheck  `yaml:",inline,omitempty"`
	PipelineState *PipelineStateCheck `yaml:",inline,omitempty"`
}

// FileChecksumCheck verifies output content against a SHA-1 fingerprint.
type FileChecksumCheck struct {
	// Path is a shard file, shard glob, or URL holding the output records.
	Path string `yaml:"path" validate:"required"`
	// Checksum is the expected hex SHA-1 digest of the sorted records.
	Checksum string `yaml:"checksum" validate:"required,sha1hex"`
	// Retries is the total read attempt budget. Zero uses the default.
	Retries int `yaml:"retries,omitempty" validate:"omitempty,min=1,max=20"`
	// Backend selects how Path is read: "file" (default) or "http".
	Backend string `yaml:"backend,omitempty" validate:"omitempty,oneof=file http"`
}

// PipelineStateCheck verifies the terminal state the runner recorded for
// the job, read from a status file the test harness writes.
type PipelineStateCheck struct {
	// StatusFile is the YAML file holding the job's reported state.
	StatusFile string `yaml:"status_file" validate:"required"`
	// State is the expected terminal state. Empty means DONE.
	State string `yaml:"state,omitempty" validate:"omitempty,job_state"`
}

// UnmarshalYAML customises check decoding so each type only populates its
// own structure.
func (c *Check) UnmarshalYAML(value *yaml.Node) error {
	type baseCheck struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}

	var base baseCheck
	if err := value.Decode(&base); err != nil {
		return err
	}

	c.ID = base.ID
	c.Name = base.Name
	c.Type = base.Type
	c.FileChecksum = nil
	c.PipelineState = nil

	switch base.Type {
	case TypeFileChecksum:
		var fc FileChecksumCheck
		if err := value.Decode(&fc); err != nil {
			return err
		}
		c.FileChecksum = &fc
	case TypePipelineState:
		var ps PipelineStateCheck
		if err := value.Decode(&ps); err != nil {
			return err
		}
		c.PipelineState = &ps
	}

	return nil
}
