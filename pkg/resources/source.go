package resources

// Location identifies where primary data lives on a provider. It is a closed
// sum; SQLTable is currently its only variant.
type Location interface {
	location()
}

// SQLTable locates primary data in a SQL table on the provider.
type SQLTable struct {
	Name string
}

func (SQLTable) location() {}

// SourceDefinition describes how a source's data comes to exist. It is a
// closed sum: primary data that already lives on the provider, or a SQL
// transformation over other sources.
type SourceDefinition interface {
	sourceDefinition()
}

// PrimaryData marks a source as pre-existing data at a location.
type PrimaryData struct {
	Location Location
}

func (PrimaryData) sourceDefinition() {}

// SQLTransformation marks a source as the result of a SQL query over other
// registered sources.
type SQLTransformation struct {
	Query   string
	Sources []NameVariant
}

func (SQLTransformation) sourceDefinition() {}

// Source is a named, versioned dataset on a provider.
type Source struct {
	Name        string           `validate:"required"`
	Variant     string           `validate:"required"`
	Definition  SourceDefinition `validate:"required"`
	Owner       string           `validate:"required"`
	Description string           `validate:"required"`
	Provider    string           `validate:"required"`
}

// NewSource validates and returns a source.
func NewSource(s Source) (Source, error) {
	if err := checkStruct(TypeSource, s); err != nil {
		return Source{}, err
	}
	if err := validateDefinition(s.Definition); err != nil {
		return Source{}, err
	}
	return s, nil
}

// validateDefinition checks the definition variant's own shape. The switch is
// exhaustive over the closed sum.
func validateDefinition(def SourceDefinition) error {
	switch d := def.(type) {
	case PrimaryData:
		if d.Location == nil {
			return invalidf(TypeSource, "primary data requires a location")
		}
		if table, ok := d.Location.(SQLTable); ok && table.Name == "" {
			return invalidf(TypeSource, "sql table location requires a name")
		}
		return nil
	case SQLTransformation:
		if d.Query == "" {
			return invalidf(TypeSource, "transformation requires a query")
		}
		for _, src := range d.Sources {
			if src.Name == "" || src.Variant == "" {
				return invalidf(TypeSource, "transformation input (%q, %q) is malformed", src.Name, src.Variant)
			}
		}
		return nil
	default:
		return invalidf(TypeSource, "unknown source definition %T", def)
	}
}

// Type returns the kind discriminator.
func (s Source) Type() Type {
	return TypeSource
}

// ID returns the identity key.
func (s Source) ID() ResourceID {
	return ResourceID{Type: TypeSource, Name: s.Name, Variant: s.Variant}
}
