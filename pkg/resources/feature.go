package resources

// Feature is a named, versioned model input computed for an entity and
// served from a provider.
type Feature struct {
	Name        string `validate:"required"`
	Variant     string `validate:"required"`
	Description string `validate:"required"`
	ValueType   string `validate:"required"`
	Entity      string `validate:"required"`
	Owner       string `validate:"required"`
	Provider    string `validate:"required"`
}

// NewFeature validates and returns a feature.
func NewFeature(f Feature) (Feature, error) {
	if err := checkStruct(TypeFeature, f); err != nil {
		return Feature{}, err
	}
	return f, nil
}

// Type returns the kind discriminator.
func (f Feature) Type() Type {
	return TypeFeature
}

// ID returns the identity key.
func (f Feature) ID() ResourceID {
	return ResourceID{Type: TypeFeature, Name: f.Name, Variant: f.Variant}
}
