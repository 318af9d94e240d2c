package collections

import (
	"errors"
	"fmt"
	"reflect"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that should be wrapped in typed errors when returned.
// Never return these directly to users - always wrap them with context.

var (
	// Builder lifecycle errors.
	ErrSealed       = errors.New("builder is sealed")
	ErrNilContainer = errors.New("container cannot be nil")

	// Registration and resolution errors.
	ErrTypeNil       = errors.New("type cannot be nil")
	ErrNotRegistered = errors.New("type is not registered")

	// Construction errors.
	ErrConstructorNil = errors.New("constructor cannot be nil")
	ErrNoConstructor  = errors.New("no collection constructor available")
)

var (
	_ error = LifetimeError{}
	_ error = CapabilityError{}
	_ error = AlreadyRegisteredError{}
	_ error = SealedError{}
	_ error = RegistrationError{}
	_ error = ResolutionError{}
	_ error = ConstructionError{}
	_ error = ValidationError{}
	_ error = BatchError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================
// Always use these typed errors instead of fmt.Errorf() or errors.New()
// for domain-specific errors. Wrap sentinel errors with these types.

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// CapabilityError indicates that a type supplied to configuration, query, or
// sealing is not usable as an item of the builder's collection.
type CapabilityError struct {
	ItemType reflect.Type
	Offered  reflect.Type
}

func (e CapabilityError) Error() string {
	return fmt.Sprintf("type %s is not usable as %s", formatType(e.Offered), formatType(e.ItemType))
}

// AlreadyRegisteredError indicates a type is already registered with the
// container. For collection types this is fatal at builder construction:
// two builders must not target the same collection type.
type AlreadyRegisteredError struct {
	ServiceType reflect.Type
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("type %s is already registered", formatType(e.ServiceType))
}

// SealedError indicates an attempt to mutate a builder's type list after the
// builder has sealed. The type list is left untouched.
type SealedError struct {
	CollectionType reflect.Type
}

func (e SealedError) Error() string {
	return fmt.Sprintf("builder for %s is sealed and can no longer be configured", formatType(e.CollectionType))
}

func (e SealedError) Is(target error) bool {
	return target == ErrSealed
}

// RegistrationError wraps errors that occur while registering a type or
// factory with the container.
type RegistrationError struct {
	ServiceType reflect.Type
	Operation   string // "provide", "register", "order"
	Cause       error
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, formatType(e.ServiceType), e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// ResolutionError wraps errors that occur while resolving an instance from
// the container.
type ResolutionError struct {
	ServiceType reflect.Type
	Cause       error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %v", formatType(e.ServiceType), e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// ConstructionError wraps errors that occur while assembling a collection
// value from resolved items. A cause of ErrNoConstructor means no construction
// path exists for the collection type: no explicit constructor was supplied,
// none is registered, and the collection type is not a slice of the item type.
type ConstructionError struct {
	CollectionType reflect.Type
	Cause          error
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %s: %v", formatType(e.CollectionType), e.Cause)
}

func (e ConstructionError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	ServiceType reflect.Type
	Cause       error
}

func (e ValidationError) Error() string {
	if e.ServiceType != nil {
		return fmt.Sprintf("%s: %v", formatType(e.ServiceType), e.Cause)
	}
	return e.Cause.Error()
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// BatchError wraps errors from a named batch of mutations.
type BatchError struct {
	Batch string
	Cause error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("batch %q: %v", e.Batch, e.Cause)
}

func (e BatchError) Unwrap() error {
	return e.Cause
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		// Format pointers as *Type instead of *package.Type
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Interface, reflect.Struct:
		// Prefer the short name if available
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
