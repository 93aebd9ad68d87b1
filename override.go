// FILE: override.go
package log

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverrides applies "key=value" overrides to a clone of s and returns the result.
// Keys are the toml names of the settings fields.
//
// Example:
//
//	s, err := log.DefaultSettings().ApplyOverrides(
//	    "name=api",
//	    "level=debug",
//	    "sinks_file=/etc/app/sinks.json",
//	)
func (s *Settings) ApplyOverrides(overrides ...string) (*Settings, error) {
	out := s.Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applySettingsField(out, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, combineConfigErrors(errors)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("log: multiple configuration errors:")
	for i, err := range errors {
		// Individual errors already carry the prefix
		errMsg := strings.TrimPrefix(err.Error(), "log: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applySettingsField applies a single key-value override
func applySettingsField(s *Settings, key, value string) error {
	switch key {
	case "name":
		s.Name = value
	case "level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		s.Level = value
	case "sinks_file":
		s.SinksFile = value
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		s.InternalErrorsToStderr = boolVal
	default:
		return fmtErrorf("unknown config key in override: %s", key)
	}
	return nil
}
