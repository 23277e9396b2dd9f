package resources

// TrainingSet joins one label with an ordered set of features into a
// materializable training dataset.
type TrainingSet struct {
	Name        string `validate:"required"`
	Variant     string `validate:"required"`
	Description string `validate:"required"`
	Owner       string `validate:"required"`
	Provider    string `validate:"required"`
	Label       NameVariant
	Features    []NameVariant `validate:"min=1,dive"`
}

// NewTrainingSet validates and returns a training set. The label reference
// and every feature reference must have both a name and a variant; the
// feature list may not be empty.
func NewTrainingSet(ts TrainingSet) (TrainingSet, error) {
	if err := checkStruct(TypeTrainingSet, ts); err != nil {
		return TrainingSet{}, err
	}
	if ts.Label.Name == "" || ts.Label.Variant == "" {
		return TrainingSet{}, invalidf(TypeTrainingSet, "label reference (%q, %q) is malformed", ts.Label.Name, ts.Label.Variant)
	}
	return ts, nil
}

// Type returns the kind discriminator.
func (ts TrainingSet) Type() Type {
	return TypeTrainingSet
}

// ID returns the identity key.
func (ts TrainingSet) ID() ResourceID {
	return ResourceID{Type: TypeTrainingSet, Name: ts.Name, Variant: ts.Variant}
}
