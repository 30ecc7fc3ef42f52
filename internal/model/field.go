package model

// FieldKind controls which normalizer is applied before two sources'
// values are compared.
type FieldKind string

const (
	KindText FieldKind = "text"
	KindDate FieldKind = "date"
	KindCode FieldKind = "code" // short codes: nationality, sex, document numbers
)

// SourcePreference names which extraction source a field's recommended value
// is taken from when the sources disagree.
type SourcePreference string

const (
	// PreferDeterministic favors the check-digit-validated machine-readable
	// source (numbers, dates, country codes).
	PreferDeterministic SourcePreference = "deterministic"
	// PreferProbabilistic favors the vision source (names with diacritics,
	// free text the MRZ transliterates lossily).
	PreferProbabilistic SourcePreference = "probabilistic"
	// PreferNone falls back to whichever source supplied a value, with the
	// deterministic source winning a true tie.
	PreferNone SourcePreference = "none"
)

// FieldSpec describes how one canonical field is compared, scored, and
// reported. Severity is fixed per field name, never computed from data.
type FieldSpec struct {
	Name       string           `yaml:"name"`
	Kind       FieldKind        `yaml:"kind"`
	Severity   Severity         `yaml:"severity"`
	Critical   bool             `yaml:"critical"` // weighted higher in document confidence
	Preference SourcePreference `yaml:"preference"`
}

// FieldTable is the consolidated per-field rule set: severity map, source
// preference sets, critical-field weighting, and comparison kinds. It is an
// immutable configuration artifact; tests substitute alternative tables
// instead of mutating package state.
type FieldTable struct {
	specs map[string]FieldSpec
}

// NewFieldTable builds an indexed table from specs. Later specs with a
// duplicate name overwrite earlier ones.
func NewFieldTable(specs []FieldSpec) *FieldTable {
	t := &FieldTable{specs: make(map[string]FieldSpec, len(specs))}
	for _, s := range specs {
		if s.Kind == "" {
			s.Kind = KindText
		}
		if s.Severity == "" {
			s.Severity = SeverityInformational
		}
		if s.Preference == "" {
			s.Preference = PreferNone
		}
		t.specs[s.Name] = s
	}
	return t
}

// Spec returns the spec for a field name. Unknown fields get a permissive
// default: text kind, informational severity, no source preference.
func (t *FieldTable) Spec(name string) FieldSpec {
	if s, ok := t.specs[name]; ok {
		return s
	}
	return FieldSpec{
		Name:       name,
		Kind:       KindText,
		Severity:   SeverityInformational,
		Preference: PreferNone,
	}
}

// Known reports whether the field name has an explicit spec.
func (t *FieldTable) Known(name string) bool {
	_, ok := t.specs[name]
	return ok
}

// DefaultFieldTable returns the passport field rules: identity-critical
// fields carry critical severity and double weight, machine-validated fields
// prefer the deterministic source, and diacritic-bearing name fields prefer
// the vision source.
func DefaultFieldTable() *FieldTable {
	return NewFieldTable([]FieldSpec{
		{Name: FieldPassportNumber, Kind: KindCode, Severity: SeverityCritical, Critical: true, Preference: PreferDeterministic},
		{Name: FieldDateOfBirth, Kind: KindDate, Severity: SeverityCritical, Critical: true, Preference: PreferDeterministic},
		{Name: FieldSurname, Kind: KindText, Severity: SeverityWarning, Critical: true, Preference: PreferProbabilistic},
		{Name: FieldGivenNames, Kind: KindText, Severity: SeverityWarning, Critical: true, Preference: PreferProbabilistic},
		{Name: FieldExpiryDate, Kind: KindDate, Severity: SeverityWarning, Preference: PreferDeterministic},
		{Name: FieldNationality, Kind: KindCode, Severity: SeverityWarning, Preference: PreferDeterministic},
		{Name: FieldIssuingCountry, Kind: KindCode, Severity: SeverityWarning, Preference: PreferDeterministic},
		{Name: FieldSex, Kind: KindCode, Severity: SeverityInformational, Preference: PreferNone},
		{Name: FieldPlaceOfBirth, Kind: KindText, Severity: SeverityInformational, Preference: PreferProbabilistic},
		{Name: FieldPersonalNumber, Kind: KindCode, Severity: SeverityInformational, Preference: PreferDeterministic},
	})
}
