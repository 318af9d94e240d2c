package collections

import "reflect"

// Container is the injection surface a Builder depends on. It turns
// registered types into live instances and owns instance lifetimes.
//
// A Builder calls RegisterType once per sealed item type, Provide once for
// the collection factory at construction time, and Contains at construction
// time to reject a second builder targeting the same collection type.
//
// The package ships a dig-backed implementation; see NewDigContainer. Any
// other container can participate by implementing this interface.
type Container interface {
	// Provide registers a constructor under the given lifetime. The
	// constructor must be a non-variadic function returning (T) or
	// (T, error); its parameters are resolved from the container when it
	// is invoked. Providing a second constructor for the same service type
	// fails with AlreadyRegisteredError.
	Provide(constructor any, lifetime Lifetime) error

	// RegisterType makes a concrete type resolvable. If a constructor was
	// already provided for the type, the existing registration is kept;
	// otherwise a zero-value constructor is synthesized and registered
	// with Transient lifetime.
	RegisterType(t reflect.Type) error

	// Contains reports whether the type is registered.
	Contains(t reflect.Type) bool

	// Descriptor returns the registration for the type, if any.
	Descriptor(t reflect.Type) (*Descriptor, bool)

	// Resolve returns an instance of the registered type. Singleton
	// registrations share one instance; Transient registrations produce a
	// new instance per call.
	Resolve(t reflect.Type) (any, error)
}
