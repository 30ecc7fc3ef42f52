package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryalma/doccheck/internal/model"
)

func TestParseFields_PlainJSON(t *testing.T) {
	fields, err := parseFields(`{"surname": "Eriksson", "given_names": "Anna Maria"}`)
	require.NoError(t, err)
	assert.Equal(t, model.FieldSet{
		"surname":     "Eriksson",
		"given_names": "Anna Maria",
	}, fields)
}

func TestParseFields_FencedJSON(t *testing.T) {
	reply := "```json\n{\"surname\": \"Eriksson\"}\n```"
	fields, err := parseFields(reply)
	require.NoError(t, err)
	assert.Equal(t, "Eriksson", fields["surname"])

	// Bare fences and prose around the object are equally common.
	reply = "Here are the fields:\n```\n{\"surname\": \"Eriksson\"}\n```\nLet me know if you need more."
	fields, err = parseFields(reply)
	require.NoError(t, err)
	assert.Equal(t, "Eriksson", fields["surname"])
}

func TestParseFields_DropsNullAndEmpty(t *testing.T) {
	fields, err := parseFields(`{
		"surname": "Eriksson",
		"place_of_birth": null,
		"personal_number": "",
		"sex": "  ",
		"nationality": "N/A",
		"expiry_date": "null"
	}`)
	require.NoError(t, err)
	assert.Equal(t, model.FieldSet{"surname": "Eriksson"}, fields)
}

func TestParseFields_Rejects(t *testing.T) {
	_, err := parseFields("")
	assert.Error(t, err)

	_, err = parseFields("I could not read the document.")
	assert.Error(t, err)

	_, err = parseFields(`{"fields": {"surname": "Eriksson"}}`)
	assert.Error(t, err, "nested objects are a hallucinated structure")

	_, err = parseFields(`{"surname": null}`)
	assert.Error(t, err, "all-null reply carries no fields")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":"b"}`, stripFences("```json\n{\"a\":\"b\"}\n```"))
	assert.Equal(t, `{"a":"b"}`, stripFences(`{"a":"b"}`))
	assert.Empty(t, stripFences("no json here"))
}
