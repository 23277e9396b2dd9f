package resources

// User is a person or service account that owns resources.
type User struct {
	Name string `validate:"required"`
}

// NewUser validates and returns a user.
func NewUser(u User) (User, error) {
	if err := checkStruct(TypeUser, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Type returns the kind discriminator.
func (u User) Type() Type {
	return TypeUser
}

// ID returns the identity key.
func (u User) ID() ResourceID {
	return ResourceID{Type: TypeUser, Name: u.Name}
}
