package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/pipecheck/internal/pipeline"
	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern  = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?$`)
	checkIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	sha1HexPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("check_id", func(fl validator.FieldLevel) bool {
			return checkIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("sha1hex", func(fl validator.FieldLevel) bool {
			return sha1HexPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("job_state", func(fl validator.FieldLevel) bool {
			return pipeline.JobState(fl.Field().String()).Valid()
		})

		validateInst = v
	})

	return validateInst
}

// ValidateSuite performs schema and cross-field validation on a suite.
func ValidateSuite(suite *Suite) error {
	if suite == nil {
		return pcerrors.NewValidationError("suite", "suite is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(suite); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(suite.Checks))
	for i, check := range suite.Checks {
		if _, exists := seen[check.ID]; exists {
			return pcerrors.NewValidationError(fieldForCheck(i, "id"), fmt.Sprintf("duplicate check id %q", check.ID), nil)
		}
		seen[check.ID] = struct{}{}

		if err := validateCheck(check, i); err != nil {
			return err
		}
	}

	return nil
}

func validateCheck(check Check, index int) error {
	switch check.Type {
	case TypeFileChecksum:
		if check.FileChecksum == nil {
			return pcerrors.NewValidationError(fieldForCheck(index, "path"), "file_checksum check needs path and checksum", nil)
		}
	case TypePipelineState:
		if check.PipelineState == nil {
			return pcerrors.NewValidationError(fieldForCheck(index, "status_file"), "pipeline_state check needs status_file", nil)
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return pcerrors.NewValidationError(field, msg, err)
	}

	return pcerrors.NewValidationError("suite", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForCheck(index int, field string) string {
	return fmt.Sprintf("checks[%d].%s", index, field)
}
