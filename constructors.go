package collections

import (
	"reflect"
	"sync"
)

// Constructor assembles a collection value from resolved item instances.
// The items arrive in sealed order; the returned value must be assignable
// to the builder's collection type.
type Constructor func(items []any) (any, error)

// Package-level registry mapping collection types to constructors. This is
// the explicit alternative to signature introspection: populate it at
// startup for collection types that are not slices of their item type and
// have no per-builder constructor.
var (
	constructorsMu sync.RWMutex
	constructors   = make(map[reflect.Type]Constructor)
)

// RegisterConstructor associates a collection type with a constructor in the
// package-level registry. Later registrations for the same type replace
// earlier ones.
func RegisterConstructor(collectionType reflect.Type, fn Constructor) error {
	if collectionType == nil {
		return ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}
	if fn == nil {
		return ValidationError{ServiceType: collectionType, Cause: ErrConstructorNil}
	}

	constructorsMu.Lock()
	defer constructorsMu.Unlock()

	constructors[collectionType] = fn
	return nil
}

// lookupConstructor returns the registered constructor for a collection
// type. The second return value reports whether one exists; absence is not
// an error.
func lookupConstructor(collectionType reflect.Type) (Constructor, bool) {
	constructorsMu.RLock()
	defer constructorsMu.RUnlock()

	fn, exists := constructors[collectionType]
	return fn, exists
}

// synthesizeConstructor builds a constructor for collection types that are
// slices accepting the item type. It returns false when no construction path
// can be synthesized; it never fails.
func synthesizeConstructor(collectionType, itemType reflect.Type) (Constructor, bool) {
	if collectionType == nil || itemType == nil {
		return nil, false
	}
	if collectionType.Kind() != reflect.Slice || !itemType.AssignableTo(collectionType.Elem()) {
		return nil, false
	}

	elemType := collectionType.Elem()
	return func(items []any) (any, error) {
		out := reflect.MakeSlice(collectionType, 0, len(items))
		for _, item := range items {
			if item == nil {
				out = reflect.Append(out, reflect.Zero(elemType))
				continue
			}
			out = reflect.Append(out, reflect.ValueOf(item))
		}
		return out.Interface(), nil
	}, true
}
