package resources

// Label is a named, versioned training target attached to an entity. It has
// the same shape as a feature but sits on the supervised side of a training
// set.
type Label struct {
	Name        string `validate:"required"`
	Variant     string `validate:"required"`
	Description string `validate:"required"`
	ValueType   string `validate:"required"`
	Entity      string `validate:"required"`
	Owner       string `validate:"required"`
	Provider    string `validate:"required"`
}

// NewLabel validates and returns a label.
func NewLabel(l Label) (Label, error) {
	if err := checkStruct(TypeLabel, l); err != nil {
		return Label{}, err
	}
	return l, nil
}

// Type returns the kind discriminator.
func (l Label) Type() Type {
	return TypeLabel
}

// ID returns the identity key.
func (l Label) ID() ResourceID {
	return ResourceID{Type: TypeLabel, Name: l.Name, Variant: l.Variant}
}
