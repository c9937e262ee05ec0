// Package formspec loads form definitions from YAML and turns them into field configs.
package formspec

import (
	"errors"
	"fmt"
	"os"

	"github.com/clive/inputkit/internal/field"
	"gopkg.in/yaml.v3"
)

// ErrNoFields is returned for a form without fields
var ErrNoFields = errors.New("form has no fields")

// Spec is a whole form
type Spec struct {
	Title  string      `yaml:"title"`
	Fields []FieldSpec `yaml:"fields"`
}

// OptionSpec is one dropdown entry. Data from YAML stays as decoded (maps, lists, scalars).
type OptionSpec struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Icon  string `yaml:"icon,omitempty"`
	Data  any    `yaml:"data,omitempty"`
}

// FieldSpec describes a single field
type FieldSpec struct {
	Name           string       `yaml:"name"`
	Label          string       `yaml:"label,omitempty"`
	Type           string       `yaml:"type,omitempty"`
	Placeholder    string       `yaml:"placeholder,omitempty"`
	Variant        string       `yaml:"variant,omitempty"`
	Multiline      bool         `yaml:"multiline,omitempty"`
	Rows           int          `yaml:"rows,omitempty"`
	Dropdown       bool         `yaml:"dropdown,omitempty"`
	Options        []OptionSpec `yaml:"options,omitempty"`
	Required       bool         `yaml:"required,omitempty"`
	Disabled       bool         `yaml:"disabled,omitempty"`
	HelperText     string       `yaml:"helper_text,omitempty"`
	StartAdornment string       `yaml:"start_adornment,omitempty"`
	EndAdornment   string       `yaml:"end_adornment,omitempty"`
	MaxLength      int          `yaml:"max_length,omitempty"`

	// Plain fields render as a bare text box whose error message shows as soon as it is set
	Plain        bool   `yaml:"plain,omitempty"`
	ErrorMessage string `yaml:"error_message,omitempty"`
}

// Load reads and validates a spec file
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form spec: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes and validates a spec document
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse form spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the spec for problems a field could not render around
func (s *Spec) Validate() error {
	if len(s.Fields) == 0 {
		return ErrNoFields
	}
	names := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("field %q: duplicate name", f.Name)
		}
		names[f.Name] = struct{}{}

		if err := f.validate(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

func (f FieldSpec) validate() error {
	if _, err := field.ParseVariant(f.Variant); err != nil {
		return err
	}
	if f.Rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", f.Rows)
	}
	if f.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", f.MaxLength)
	}
	if f.Plain && (f.Dropdown || f.Multiline) {
		return errors.New("plain fields are single-line")
	}
	if f.ErrorMessage != "" && !f.Plain {
		return errors.New("error_message is only supported on plain fields")
	}
	if len(f.Options) > 0 && !f.Dropdown {
		return errors.New("options given but dropdown is not set")
	}
	return field.ValidateOptions(f.options())
}

// options converts the option specs to field options
func (f FieldSpec) options() []field.Option {
	opts := make([]field.Option, len(f.Options))
	for i, o := range f.Options {
		opts[i] = field.Option{Value: o.Value, Label: o.Label, Icon: o.Icon, Data: o.Data}
	}
	return opts
}

// Config returns the field config for this spec. Handlers are left for the host.
func (f FieldSpec) Config() field.Config {
	// Validated specs never fail here
	variant, _ := field.ParseVariant(f.Variant)
	return field.Config{
		Name:           f.Name,
		Label:          f.Label,
		Type:           f.Type,
		Placeholder:    f.Placeholder,
		Variant:        variant,
		Multiline:      f.Multiline,
		Rows:           f.Rows,
		Dropdown:       f.Dropdown,
		Options:        f.options(),
		Required:       f.Required,
		Disabled:       f.Disabled,
		HelperText:     f.HelperText,
		StartAdornment: f.StartAdornment,
		EndAdornment:   f.EndAdornment,
		MaxLength:      f.MaxLength,
	}
}

// TextFieldConfig returns the config for a plain field
func (f FieldSpec) TextFieldConfig() field.TextFieldConfig {
	return field.TextFieldConfig{
		Name:         f.Name,
		Label:        f.Label,
		Type:         f.Type,
		Placeholder:  f.Placeholder,
		Required:     f.Required,
		Disabled:     f.Disabled,
		MaxLength:    f.MaxLength,
		ErrorMessage: f.ErrorMessage,
	}
}
