package formfill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: https://forms.example.com/intake
ready_selector: "#intake-form"
fields:
  - field: surname
    selector: "#lastName"
  - field: date_of_birth
    selector: "#dob"
    kind: date
  - field: sex
    selector: "input[name=sex][value=%s]"
    kind: radio
  - field: nationality
    selector: "#country"
    kind: select
    required: true
`), 0o644))

	m, err := LoadMapping(path)
	require.NoError(t, err)

	assert.Equal(t, "https://forms.example.com/intake", m.URL)
	assert.Equal(t, "#intake-form", m.ReadySelector)
	require.Len(t, m.Fields, 4)

	assert.Equal(t, ControlText, m.Fields[0].Kind, "kind defaults to text")
	assert.Equal(t, ControlDate, m.Fields[1].Kind)
	assert.Equal(t, "01/02/2006", m.Fields[1].Format, "date format defaults to US slash layout")
	assert.True(t, m.Fields[3].Required)
}

func TestLoadMapping_MissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMapping_Validate(t *testing.T) {
	valid := func() Mapping {
		return Mapping{
			URL: "https://forms.example.com/intake",
			Fields: []FieldMapping{
				{Field: "surname", Selector: "#lastName"},
			},
		}
	}

	m := valid()
	require.NoError(t, m.Validate())

	m = valid()
	m.URL = ""
	assert.Error(t, m.Validate())

	m = valid()
	m.Fields = nil
	assert.Error(t, m.Validate())

	m = valid()
	m.Fields[0].Selector = ""
	assert.Error(t, m.Validate())

	m = valid()
	m.Fields[0].Kind = "slider"
	assert.Error(t, m.Validate())

	m = valid()
	m.Fields = append(m.Fields, FieldMapping{Field: "surname", Selector: "#other"})
	assert.Error(t, m.Validate(), "duplicate field mappings are rejected")
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"true", "Yes", "y", "1", "ON", " checked "} {
		assert.True(t, truthy(v), v)
	}
	for _, v := range []string{"false", "no", "0", "", "maybe"} {
		assert.False(t, truthy(v), v)
	}
}
