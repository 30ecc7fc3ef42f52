package formfill

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ControlKind names the form-control handler used for a mapping.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlSelect   ControlKind = "select"
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
	ControlDate     ControlKind = "date"
)

// FieldMapping binds one extracted field to a form control.
type FieldMapping struct {
	// Field is the canonical field name in the merged record.
	Field string `yaml:"field"`
	// Selector is the CSS selector of the control. For radio groups it may
	// contain %s, replaced with the field value.
	Selector string      `yaml:"selector"`
	Kind     ControlKind `yaml:"kind"`
	// Format is the Go time layout for date controls; default "01/02/2006".
	Format string `yaml:"format,omitempty"`
	// Required mappings are reported as failures when the record has no
	// value for the field; optional ones are skipped silently.
	Required bool `yaml:"required,omitempty"`
}

// Mapping is a full form definition.
type Mapping struct {
	// URL is the form page to navigate to.
	URL string `yaml:"url"`
	// ReadySelector is waited on before any field is touched.
	ReadySelector string         `yaml:"ready_selector"`
	Fields        []FieldMapping `yaml:"fields"`
}

// LoadMapping reads and validates a YAML mapping file.
func LoadMapping(path string) (*Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "formfill: read mapping %s", path)
	}
	var m Mapping
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, eris.Wrapf(err, "formfill: parse mapping %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate rejects incomplete or unknown-kind mappings up front.
func (m *Mapping) Validate() error {
	if m.URL == "" {
		return eris.New("formfill: mapping url is required")
	}
	if len(m.Fields) == 0 {
		return eris.New("formfill: mapping has no fields")
	}
	seen := make(map[string]struct{}, len(m.Fields))
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Field == "" || f.Selector == "" {
			return eris.Errorf("formfill: mapping entry %d needs field and selector", i)
		}
		switch f.Kind {
		case ControlText, ControlSelect, ControlRadio, ControlCheckbox, ControlDate:
		case "":
			f.Kind = ControlText
		default:
			return eris.Errorf("formfill: unknown control kind %q for %s", f.Kind, f.Field)
		}
		if f.Kind == ControlDate && f.Format == "" {
			f.Format = "01/02/2006"
		}
		if _, dup := seen[f.Field]; dup {
			return eris.Errorf("formfill: duplicate mapping for field %s", f.Field)
		}
		seen[f.Field] = struct{}{}
	}
	return nil
}
