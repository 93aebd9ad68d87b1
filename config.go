// FILE: config.go
package log

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// settingsPrefix is the table holding registry settings in a settings file
const settingsPrefix = "logroute."

// Settings holds registry-level configuration
type Settings struct {
	Name      string `toml:"name"`       // Display name of the default logger, module column fallback
	Level     string `toml:"level"`      // Registry default level
	SinksFile string `toml:"sinks_file"` // Sink document loaded by ApplySettings, optional

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultSettings is the single source for all configurable default values
var defaultSettings = Settings{
	Name:                   "",
	Level:                  "info",
	SinksFile:              "",
	InternalErrorsToStderr: false,
}

// DefaultSettings returns a copy of the default settings
func DefaultSettings() *Settings {
	copied := defaultSettings
	return &copied
}

// NewSettingsFromFile loads the [logroute] table of a TOML file; a missing file yields defaults
func NewSettingsFromFile(path string) (*Settings, error) {
	s := DefaultSettings()

	loader := config.New()

	if err := loader.RegisterStruct(settingsPrefix, *s); err != nil {
		return nil, fmt.Errorf("failed to register settings struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
	}

	if err := extractSettings(loader, settingsPrefix, s); err != nil {
		return nil, fmt.Errorf("failed to extract settings values: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// extractSettings copies loader values into s by toml tag
func extractSettings(loader *config.Config, prefix string, s *Settings) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks the settings
func (s *Settings) Validate() error {
	if _, err := ParseLevel(s.Level); err != nil {
		return err
	}
	if strings.ContainsAny(s.Name, "\n\r") {
		return fmtErrorf("name cannot contain line breaks")
	}
	return nil
}

// Clone creates a copy of the settings
func (s *Settings) Clone() *Settings {
	copied := *s
	return &copied
}

// ApplySettings validates s, applies name, default level and internal error reporting,
// then loads the sink document if one is named
func (r *Registry) ApplySettings(s *Settings) error {
	if s == nil {
		return fmtErrorf("settings cannot be nil")
	}
	if err := s.Validate(); err != nil {
		return fmtErrorf("invalid settings: %w", err)
	}

	var doc *Document
	if s.SinksFile != "" {
		d, err := ReadSinkDocument(s.SinksFile)
		if err != nil {
			return err
		}
		doc = d
	}

	level, _ := ParseLevel(s.Level)
	r.SetName(s.Name)
	r.SetDefaultLevel(level)
	internalErrorsToStderr.Store(s.InternalErrorsToStderr)

	if doc != nil {
		r.ApplyDocument(doc)
	}
	return nil
}
