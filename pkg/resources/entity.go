package resources

// Entity is a real-world object (user, transaction, device) that features
// and labels attach to.
type Entity struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

// NewEntity validates and returns an entity.
func NewEntity(e Entity) (Entity, error) {
	if err := checkStruct(TypeEntity, e); err != nil {
		return Entity{}, err
	}
	return e, nil
}

// Type returns the kind discriminator.
func (e Entity) Type() Type {
	return TypeEntity
}

// ID returns the identity key.
func (e Entity) ID() ResourceID {
	return ResourceID{Type: TypeEntity, Name: e.Name}
}
