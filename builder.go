package collections

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Builder accumulates an ordered list of item types, seals that list on
// first use, and assembles container-resolved instances into a collection.
//
// A builder has two phases. While configuring, the type list may be mutated
// freely through Configure. The first call to Seal, CreateItems, or
// CreateCollection seals the builder: the ordering hook runs, every
// resulting type is capability-checked and registered with the container,
// and the sealed set becomes immutable. Configuration afterwards fails with
// SealedError.
//
// All methods are safe for concurrent use. Configuration mutation and the
// seal transition share a single lock, so the last successful Configure
// happens-before the seal that snapshots it. Once sealed, CreateItems and
// CreateCollection read the sealed set without locking.
//
// Example:
//
//	container := collections.NewDigContainer()
//	builder, err := collections.New[HealthCheck, []HealthCheck](container)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = builder.Configure(collections.Append(
//	    collections.TypeOf[*DatabaseCheck](),
//	    collections.TypeOf[*QueueCheck](),
//	))
//
//	checks, err := collections.CreateCollection[[]HealthCheck](builder)
type Builder struct {
	mu sync.Mutex

	id             string
	container      Container
	itemType       reflect.Type
	collectionType reflect.Type
	lifetime       Lifetime
	order          OrderHook
	construct      Constructor

	list *TypeList

	// sealedTypes is written once, under mu, before sealed flips to true.
	// Reads after observing sealed require no lock.
	sealed      atomic.Bool
	sealedTypes []reflect.Type
}

// NewBuilder creates a builder for the given item and collection types.
//
// The collection type must not already be registered with the container; a
// second builder targeting the same collection type fails with
// AlreadyRegisteredError. On success the builder registers a factory for the
// collection type under the builder's lifetime, so the collection itself can
// be resolved from the container.
func NewBuilder(container Container, itemType, collectionType reflect.Type, opts ...Option) (*Builder, error) {
	if container == nil {
		return nil, ValidationError{ServiceType: collectionType, Cause: ErrNilContainer}
	}
	if itemType == nil || collectionType == nil {
		return nil, ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}

	options := &builderOptions{lifetime: Singleton}
	for _, opt := range opts {
		if opt != nil {
			opt.applyOption(options)
		}
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	if container.Contains(collectionType) {
		return nil, AlreadyRegisteredError{ServiceType: collectionType}
	}

	b := &Builder{
		id:             uuid.NewString(),
		container:      container,
		itemType:       itemType,
		collectionType: collectionType,
		lifetime:       options.lifetime,
		order:          options.order,
		construct:      options.construct,
		list:           newTypeList(itemType),
	}

	if err := container.Provide(b.collectionFactory(), options.lifetime); err != nil {
		return nil, err
	}

	return b, nil
}

// collectionFactory synthesizes a func() (TCollection, error) that builds the
// collection through this builder, for registration with the container.
func (b *Builder) collectionFactory() any {
	factoryType := reflect.FuncOf(nil, []reflect.Type{b.collectionType, errType}, false)
	factory := reflect.MakeFunc(factoryType, func([]reflect.Value) []reflect.Value {
		out := []reflect.Value{reflect.Zero(b.collectionType), reflect.Zero(errType)}

		collection, err := b.CreateCollection()
		if err != nil {
			errValue := reflect.New(errType).Elem()
			errValue.Set(reflect.ValueOf(err))
			out[1] = errValue
			return out
		}

		value := reflect.ValueOf(collection)
		if !value.IsValid() || !value.Type().AssignableTo(b.collectionType) {
			err := ConstructionError{
				CollectionType: b.collectionType,
				Cause:          fmt.Errorf("constructor returned %T", collection),
			}
			errValue := reflect.New(errType).Elem()
			errValue.Set(reflect.ValueOf(error(err)))
			out[1] = errValue
			return out
		}

		out[0] = value
		return out
	})

	return factory.Interface()
}

// ID returns the builder's unique identifier.
func (b *Builder) ID() string {
	return b.id
}

// ItemType returns the type every configured member must be usable as.
func (b *Builder) ItemType() reflect.Type {
	return b.itemType
}

// CollectionType returns the type of the produced collection.
func (b *Builder) CollectionType() reflect.Type {
	return b.collectionType
}

// Lifetime returns the lifetime under which the collection type is
// registered with the container.
func (b *Builder) Lifetime() Lifetime {
	return b.lifetime
}

// Sealed reports whether the builder has sealed.
func (b *Builder) Sealed() bool {
	return b.sealed.Load()
}

// String returns a human-readable description of the builder.
func (b *Builder) String() string {
	state := "configuring"
	if b.Sealed() {
		state = "sealed"
	}
	return fmt.Sprintf("Builder[%s -> %s](%s, %s)", formatType(b.itemType), formatType(b.collectionType), b.id, state)
}

// Configure applies mutations to the type list, in order, under the builder
// lock. A failing mutation aborts the whole call and leaves the list exactly
// as it was. After the builder has sealed, Configure fails with SealedError
// without mutating anything.
func (b *Builder) Configure(mutations ...Mutation) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed.Load() {
		return SealedError{CollectionType: b.collectionType}
	}

	// Mutate a scratch copy so a failure midway leaves the list untouched.
	scratch := b.list.clone()
	for _, mutation := range mutations {
		if mutation == nil {
			continue
		}

		if err := mutation(scratch); err != nil {
			return err
		}
	}

	b.list = scratch
	return nil
}

// Types returns a copy of the configured type list. It is valid in both
// phases and always reflects the configured list, not the sealed set.
func (b *Builder) Types() []reflect.Type {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.list.Types()
}

// Has reports whether t is in the configured type list. It fails with
// CapabilityError when t is not usable as the item type, regardless of
// presence.
//
// Has reads the live configured list in every phase and never consults the
// sealed set, so it may answer true for a type the ordering hook filtered
// out at sealing time. Presence does not imply resolvability.
func (b *Builder) Has(t reflect.Type) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.list.Has(t)
}

// SealedTypes returns a copy of the sealed type set, or nil while the
// builder is still configuring.
func (b *Builder) SealedTypes() []reflect.Type {
	if !b.sealed.Load() {
		return nil
	}
	return slices.Clone(b.sealedTypes)
}

// Seal performs the one-time transition from configuration to the immutable,
// container-registered type set. It is idempotent: concurrent and repeated
// calls observe the same sealed set, and container registration happens at
// most once per builder.
//
// Sealing applies the ordering hook to the configured list, capability-checks
// every resulting type, and registers each with the container, in that
// order. Any failure aborts the transition with the builder state unchanged.
func (b *Builder) Seal() error {
	if b.sealed.Load() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed.Load() {
		return nil
	}

	types := b.list.Types()
	if b.order != nil {
		ordered, err := b.order(types)
		if err != nil {
			return RegistrationError{ServiceType: b.collectionType, Operation: "order", Cause: err}
		}
		types = ordered
	}

	// The hook may have injected types that never went through Configure.
	for _, t := range types {
		if t == nil {
			return ValidationError{ServiceType: b.collectionType, Cause: ErrTypeNil}
		}
		if !t.AssignableTo(b.itemType) {
			return CapabilityError{ItemType: b.itemType, Offered: t}
		}
	}

	for _, t := range types {
		if err := b.container.RegisterType(t); err != nil {
			return RegistrationError{ServiceType: t, Operation: "register", Cause: err}
		}
	}

	b.sealedTypes = types
	b.sealed.Store(true)
	return nil
}

// CreateItems seals the builder if needed, then resolves one instance per
// sealed type from the container, in sealed order. Every call returns a new
// slice with instances resolved at call time.
func (b *Builder) CreateItems() ([]any, error) {
	if err := b.Seal(); err != nil {
		return nil, err
	}

	items := make([]any, 0, len(b.sealedTypes))
	for _, t := range b.sealedTypes {
		instance, err := b.container.Resolve(t)
		if err != nil {
			return nil, err
		}
		items = append(items, instance)
	}

	return items, nil
}

// CreateCollection builds a collection value from the result of CreateItems.
// Construction uses, in order of precedence: the constructor supplied with
// WithConstructor, the package-level constructor registry, and a synthesized
// slice constructor when the collection type is a slice of the item type.
// With no construction path available it fails with ConstructionError
// wrapping ErrNoConstructor.
//
// Each call produces an independent collection instance; the base contract
// does not cache.
func (b *Builder) CreateCollection() (any, error) {
	items, err := b.CreateItems()
	if err != nil {
		return nil, err
	}

	construct := b.construct
	if construct == nil {
		if fn, exists := lookupConstructor(b.collectionType); exists {
			construct = fn
		}
	}
	if construct == nil {
		if fn, exists := synthesizeConstructor(b.collectionType, b.itemType); exists {
			construct = fn
		}
	}
	if construct == nil {
		return nil, ConstructionError{CollectionType: b.collectionType, Cause: ErrNoConstructor}
	}

	collection, err := construct(items)
	if err != nil {
		return nil, ConstructionError{CollectionType: b.collectionType, Cause: err}
	}

	return collection, nil
}
