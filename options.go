package collections

import "fmt"

// An Option modifies the default behavior of NewBuilder.
type Option interface {
	applyOption(*builderOptions)
}

type builderOptions struct {
	lifetime  Lifetime
	order     OrderHook
	construct Constructor
}

func (o *builderOptions) Validate() error {
	if !o.lifetime.IsValid() {
		return LifetimeError{Value: o.lifetime}
	}
	return nil
}

// WithLifetime sets the lifetime under which the produced collection type is
// registered with the container: Singleton for one shared collection per
// container, Transient for a new collection per resolution. The default is
// Singleton.
//
// This governs the container's registration only. CreateCollection itself
// always builds a fresh collection.
func WithLifetime(lifetime Lifetime) Option {
	return lifetimeOption(lifetime)
}

type lifetimeOption Lifetime

func (o lifetimeOption) String() string {
	return fmt.Sprintf("WithLifetime(%s)", Lifetime(o))
}

func (o lifetimeOption) applyOption(opts *builderOptions) {
	opts.lifetime = Lifetime(o)
}

// WithOrder sets the ordering/filtering hook consulted once at sealing time.
func WithOrder(hook OrderHook) Option {
	return orderOption(hook)
}

type orderOption OrderHook

func (o orderOption) applyOption(opts *builderOptions) {
	opts.order = OrderHook(o)
}

// WithConstructor sets the constructor used to assemble the collection from
// resolved items. It takes precedence over the package-level constructor
// registry and over slice synthesis.
func WithConstructor(fn Constructor) Option {
	return constructorOption(fn)
}

type constructorOption Constructor

func (o constructorOption) applyOption(opts *builderOptions) {
	opts.construct = Constructor(o)
}
