package collections

import (
	"reflect"
	"sync"

	"go.uber.org/dig"
)

// DigContainer is a Container backed by go.uber.org/dig.
//
// Singleton constructors are handed to the dig graph, which wires their
// dependencies and caches their results; instances are extracted through a
// synthesized invoke function and memoized per registration. Transient
// constructors are invoked directly on every resolution, with their
// parameters resolved back through the container (so a transient service may
// depend on dig-provided singletons).
//
// Registration is guarded by an internal lock. As with dig itself, all
// registration should complete before resolution begins.
type DigContainer struct {
	mu          sync.RWMutex
	engine      *dig.Container
	descriptors map[reflect.Type]*Descriptor
}

var _ Container = (*DigContainer)(nil)

// NewDigContainer creates an empty dig-backed container.
func NewDigContainer() *DigContainer {
	return &DigContainer{
		engine:      dig.New(),
		descriptors: make(map[reflect.Type]*Descriptor),
	}
}

// Provide registers a constructor under the given lifetime.
func (c *DigContainer) Provide(constructor any, lifetime Lifetime) error {
	descriptor, err := newDescriptor(constructor, lifetime)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.descriptors[descriptor.Type]; exists {
		return AlreadyRegisteredError{ServiceType: descriptor.Type}
	}

	if lifetime == Singleton {
		if err := c.engine.Provide(descriptor.Constructor.Interface()); err != nil {
			return RegistrationError{ServiceType: descriptor.Type, Operation: "provide", Cause: err}
		}
	}

	c.descriptors[descriptor.Type] = descriptor
	return nil
}

// RegisterType makes a concrete type resolvable, synthesizing a zero-value
// Transient constructor unless a factory was already provided for it.
func (c *DigContainer) RegisterType(t reflect.Type) error {
	if t == nil {
		return ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.descriptors[t]; exists {
		return nil
	}

	descriptor, err := synthesizeDescriptor(t)
	if err != nil {
		return err
	}

	c.descriptors[t] = descriptor
	return nil
}

// Contains reports whether the type is registered.
func (c *DigContainer) Contains(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.descriptors[t]
	return exists
}

// Descriptor returns the registration for the type, if any.
func (c *DigContainer) Descriptor(t reflect.Type) (*Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptor, exists := c.descriptors[t]
	return descriptor, exists
}

// Count returns the number of registrations.
func (c *DigContainer) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.descriptors)
}

// Resolve returns an instance of the registered type.
func (c *DigContainer) Resolve(t reflect.Type) (any, error) {
	c.mu.RLock()
	descriptor, exists := c.descriptors[t]
	c.mu.RUnlock()

	if !exists {
		return nil, ResolutionError{ServiceType: t, Cause: ErrNotRegistered}
	}

	if descriptor.Lifetime == Singleton {
		descriptor.once.Do(func() {
			descriptor.instance, descriptor.err = c.extract(t)
		})
		return descriptor.instance, descriptor.err
	}

	return c.invoke(descriptor)
}

// extract pulls a dig-provided value out of the engine through a synthesized
// invoke function.
func (c *DigContainer) extract(t reflect.Type) (any, error) {
	var out any

	fnType := reflect.FuncOf([]reflect.Type{t}, nil, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		out = args[0].Interface()
		return nil
	})

	if err := c.engine.Invoke(fn.Interface()); err != nil {
		return nil, ResolutionError{ServiceType: t, Cause: err}
	}

	return out, nil
}

// invoke calls a transient constructor, resolving its parameters from the
// container.
func (c *DigContainer) invoke(descriptor *Descriptor) (any, error) {
	ctorType := descriptor.ConstructorType
	args := make([]reflect.Value, ctorType.NumIn())
	for i := range args {
		dependency, err := c.Resolve(ctorType.In(i))
		if err != nil {
			return nil, ResolutionError{ServiceType: descriptor.Type, Cause: err}
		}

		if dependency == nil {
			args[i] = reflect.Zero(ctorType.In(i))
		} else {
			args[i] = reflect.ValueOf(dependency)
		}
	}

	results := descriptor.Constructor.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return nil, ResolutionError{ServiceType: descriptor.Type, Cause: results[1].Interface().(error)}
	}

	return results[0].Interface(), nil
}
