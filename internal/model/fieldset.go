package model

import "sort"

// Canonical field names shared by all extraction sources. A source that
// decodes a field under a different label maps it to one of these before
// returning its FieldSet.
const (
	FieldPassportNumber = "passport_number"
	FieldDateOfBirth    = "date_of_birth"
	FieldSurname        = "surname"
	FieldGivenNames     = "given_names"
	FieldNationality    = "nationality"
	FieldExpiryDate     = "expiry_date"
	FieldSex            = "sex"
	FieldPlaceOfBirth   = "place_of_birth"
	FieldIssuingCountry = "issuing_country"
	FieldPersonalNumber = "personal_number"
)

// FieldSet is the raw field-name-to-value output of one extraction source
// for one document. Empty-string values are treated as absent. A FieldSet is
// never mutated after a source returns it; merge results are built into new
// maps.
type FieldSet map[string]string

// Get returns the value for name and whether a non-empty value is present.
func (fs FieldSet) Get(name string) (string, bool) {
	v, ok := fs[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Names returns the field names with non-empty values, sorted.
func (fs FieldSet) Names() []string {
	names := make([]string, 0, len(fs))
	for name, v := range fs {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// UnionNames returns the sorted union of non-empty field names across both
// sets. Either set may be nil.
func UnionNames(a, b FieldSet) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for name, v := range a {
		if v != "" {
			seen[name] = struct{}{}
		}
	}
	for name, v := range b {
		if v != "" {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the set, dropping empty values.
func (fs FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(fs))
	for name, v := range fs {
		if v != "" {
			out[name] = v
		}
	}
	return out
}
