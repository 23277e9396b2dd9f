// Package resources defines the metadata resource model for a feature store.
//
// A resource is one immutable, validated record describing a piece of the
// feature-store graph: a provider, user, entity, source, feature, label, or
// training set. Resources validate at construction time (fail fast, fail
// loudly) and never change afterwards; collecting and ordering them is the
// job of the registry package.
package resources

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Type discriminates resource kinds. Values are stable and appear in error
// messages and identity keys.
type Type string

const (
	TypeUser        Type = "user"
	TypeProvider    Type = "provider"
	TypeSource      Type = "source"
	TypeEntity      Type = "entity"
	TypeFeature     Type = "feature"
	TypeLabel       Type = "label"
	TypeTrainingSet Type = "training-set"
)

// Errors.
var (
	ErrInvalidResource = errors.New("invalid resource")
)

// validate is the singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Resource is implemented by every resource kind.
type Resource interface {
	// Type returns the kind discriminator.
	Type() Type
	// ID returns the identity key used for deduplication.
	ID() ResourceID
}

// ResourceID uniquely identifies a resource. Variant is empty for singleton
// kinds (user, provider, entity).
type ResourceID struct {
	Type    Type
	Name    string
	Variant string
}

// String renders the ID as "type/name" or "type/name@variant".
func (id ResourceID) String() string {
	if id.Variant == "" {
		return fmt.Sprintf("%s/%s", id.Type, id.Name)
	}
	return fmt.Sprintf("%s/%s@%s", id.Type, id.Name, id.Variant)
}

// NameVariant references a variant-bearing resource by name and variant.
type NameVariant struct {
	Name    string `validate:"required"`
	Variant string `validate:"required"`
}

// FieldError describes a single failed constraint on a resource field.
type FieldError struct {
	Resource Type
	Field    string
	Tag      string
}

// Error returns the error message.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s: field '%s' failed constraint '%s'",
		ErrInvalidResource, e.Resource, e.Field, e.Tag)
}

// Unwrap makes FieldError match ErrInvalidResource via errors.Is.
func (e FieldError) Unwrap() error {
	return ErrInvalidResource
}

// checkStruct runs struct-tag validation and converts the first failure into
// a FieldError.
func checkStruct(t Type, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResource, t, err)
	}

	// Return the first validation error for clarity.
	fe := validationErrors[0]
	return FieldError{
		Resource: t,
		Field:    fe.Field(),
		Tag:      fe.Tag(),
	}
}

// invalidf builds an ErrInvalidResource with kind and detail context.
func invalidf(t Type, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidResource, t, fmt.Sprintf(format, args...))
}
