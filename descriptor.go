package collections

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Descriptor represents a single container registration: a service type, the
// constructor that produces it, and the lifetime governing instance caching.
type Descriptor struct {
	// Type is the service type this descriptor produces.
	Type reflect.Type

	// Lifetime determines instance caching behavior.
	Lifetime Lifetime

	// Constructor is the reflected function value.
	Constructor reflect.Value

	// ConstructorType is the type of the constructor function.
	ConstructorType reflect.Type

	// Synthesized indicates the constructor was derived from the service
	// type rather than supplied by a caller.
	Synthesized bool

	// Singleton instance cache.
	once     sync.Once
	instance any
	err      error
}

// newDescriptor creates a descriptor from a constructor function.
//
// The constructor must be a non-variadic function returning either (T) or
// (T, error). Its parameters are resolved from the container at invocation
// time.
func newDescriptor(constructor any, lifetime Lifetime) (*Descriptor, error) {
	if constructor == nil {
		return nil, ValidationError{ServiceType: nil, Cause: ErrConstructorNil}
	}

	if !lifetime.IsValid() {
		return nil, LifetimeError{Value: lifetime}
	}

	value := reflect.ValueOf(constructor)
	if !value.IsValid() || (value.Kind() == reflect.Pointer && value.IsNil()) {
		return nil, ValidationError{ServiceType: nil, Cause: ErrConstructorNil}
	}

	ctorType := value.Type()
	if ctorType.Kind() != reflect.Func {
		return nil, ValidationError{
			ServiceType: ctorType,
			Cause:       fmt.Errorf("constructor must be a function, got %s", ctorType.Kind()),
		}
	}

	if ctorType.IsVariadic() {
		return nil, ValidationError{
			ServiceType: ctorType,
			Cause:       errors.New("variadic constructors are not supported"),
		}
	}

	switch ctorType.NumOut() {
	case 1:
		if ctorType.Out(0).Implements(errType) {
			return nil, ValidationError{
				ServiceType: ctorType,
				Cause:       errors.New("constructor must return a service value, not only an error"),
			}
		}
	case 2:
		if ctorType.Out(0).Implements(errType) {
			return nil, ValidationError{
				ServiceType: ctorType,
				Cause:       errors.New("constructor must return a service value, not only an error"),
			}
		}
		if !ctorType.Out(1).Implements(errType) {
			return nil, ValidationError{
				ServiceType: ctorType,
				Cause:       errors.New("constructor's second return value must be an error"),
			}
		}
	default:
		return nil, ValidationError{
			ServiceType: ctorType,
			Cause:       fmt.Errorf("constructor must return (T) or (T, error), got %d return values", ctorType.NumOut()),
		}
	}

	return &Descriptor{
		Type:            ctorType.Out(0),
		Lifetime:        lifetime,
		Constructor:     value,
		ConstructorType: ctorType,
	}, nil
}

// synthesizeDescriptor creates a Transient descriptor whose constructor
// produces zero values of the given type: new(E) for *E, the zero value for
// structs and other concrete kinds. Interface types have no synthesizable
// construction and require an explicit factory via Container.Provide.
func synthesizeDescriptor(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}

	if t.Kind() == reflect.Interface {
		return nil, ValidationError{
			ServiceType: t,
			Cause:       errors.New("cannot synthesize a constructor for an interface type; provide a factory"),
		}
	}

	ctorType := reflect.FuncOf(nil, []reflect.Type{t}, false)
	ctor := reflect.MakeFunc(ctorType, func([]reflect.Value) []reflect.Value {
		if t.Kind() == reflect.Pointer {
			return []reflect.Value{reflect.New(t.Elem())}
		}
		return []reflect.Value{reflect.Zero(t)}
	})

	return &Descriptor{
		Type:            t,
		Lifetime:        Transient,
		Constructor:     ctor,
		ConstructorType: ctorType,
		Synthesized:     true,
	}, nil
}

// Validate validates the descriptor's configuration.
func (d *Descriptor) Validate() error {
	if d.Type == nil {
		return ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}

	if !d.Constructor.IsValid() {
		return ValidationError{ServiceType: d.Type, Cause: ErrConstructorNil}
	}

	if d.ConstructorType == nil || d.ConstructorType.Kind() != reflect.Func {
		return ValidationError{ServiceType: d.Type, Cause: ErrConstructorNil}
	}

	if !d.Lifetime.IsValid() {
		return LifetimeError{Value: d.Lifetime}
	}

	return nil
}

// String returns a human-readable description of the registration.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", formatType(d.Type), d.Lifetime)
}
