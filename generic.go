package collections

import (
	"fmt"
	"reflect"
)

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf on a value, it
// works for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// New creates a builder for item type TItem and collection type TCollection.
//
// Example:
//
//	builder, err := collections.New[HealthCheck, []HealthCheck](container)
func New[TItem any, TCollection any](container Container, opts ...Option) (*Builder, error) {
	return NewBuilder(container, TypeOf[TItem](), TypeOf[TCollection](), opts...)
}

// Has reports whether T is in the builder's configured type list. Because
// the item capability is enforced when types enter the list, a T that is not
// usable as an item can never be present; this form therefore reports plain
// absence instead of a capability violation.
func Has[T any](b *Builder) bool {
	present, err := b.Has(TypeOf[T]())
	if err != nil {
		return false
	}
	return present
}

// CreateItems resolves the builder's items and returns them as []TItem.
func CreateItems[TItem any](b *Builder) ([]TItem, error) {
	instances, err := b.CreateItems()
	if err != nil {
		return nil, err
	}

	items := make([]TItem, 0, len(instances))
	for i, instance := range instances {
		item, ok := instance.(TItem)
		if !ok {
			return nil, fmt.Errorf("type assertion failed for item %d: expected %s, got %T",
				i, formatType(TypeOf[TItem]()), instance)
		}
		items = append(items, item)
	}

	return items, nil
}

// CreateCollection builds the builder's collection and returns it as
// TCollection.
func CreateCollection[TCollection any](b *Builder) (TCollection, error) {
	var zero TCollection

	collection, err := b.CreateCollection()
	if err != nil {
		return zero, err
	}

	result, ok := collection.(TCollection)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: expected %s, got %T",
			formatType(TypeOf[TCollection]()), collection)
	}

	return result, nil
}

// MustCreateCollection builds the builder's collection and panics on error.
func MustCreateCollection[TCollection any](b *Builder) TCollection {
	collection, err := CreateCollection[TCollection](b)
	if err != nil {
		panic(fmt.Sprintf("failed to create %s: %v", formatType(TypeOf[TCollection]()), err))
	}
	return collection
}

// Resolve is a generic helper that resolves a registered type from a
// container as T.
func Resolve[T any](container Container) (T, error) {
	var zero T

	instance, err := container.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}

	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: expected %s, got %T",
			formatType(TypeOf[T]()), instance)
	}

	return result, nil
}

// Registered reports whether T is registered with the container.
func Registered[T any](container Container) bool {
	return container.Contains(TypeOf[T]())
}

// RegisterConstructorFor associates TCollection with a constructor in the
// package-level registry.
func RegisterConstructorFor[TCollection any](fn func(items []any) (TCollection, error)) error {
	if fn == nil {
		return ValidationError{ServiceType: TypeOf[TCollection](), Cause: ErrConstructorNil}
	}

	return RegisterConstructor(TypeOf[TCollection](), func(items []any) (any, error) {
		return fn(items)
	})
}
