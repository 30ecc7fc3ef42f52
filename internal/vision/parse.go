package vision

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/tryalma/doccheck/internal/model"
)

// parseFields decodes the model's JSON reply into a FieldSet. Models wrap
// JSON in markdown fences often enough that the parser strips them first.
// Null and empty values are dropped; non-string scalars are rejected so a
// hallucinated structure fails loudly instead of merging silently.
func parseFields(reply string) (model.FieldSet, error) {
	body := stripFences(reply)
	if body == "" {
		return nil, eris.New("vision: empty model reply")
	}

	var raw map[string]*string
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, eris.Wrapf(err, "vision: model reply is not a JSON object: %.80s", body)
	}

	fields := make(model.FieldSet, len(raw))
	for name, v := range raw {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(*v)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
			continue
		}
		fields[name] = s
	}
	if len(fields) == 0 {
		return nil, eris.New("vision: model reply contained no readable fields")
	}
	return fields, nil
}

// stripFences trims a ```json ... ``` (or bare ```) wrapper and anything
// outside the outermost braces.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}
