// Package collections provides ordered, container-backed collection builders.
// A builder accumulates item types during a configuration phase, seals the
// list on first use, and assembles one container-resolved instance per type
// into a typed collection.
//
// # Overview
//
// The package is built around three pieces:
//
//   - Builder: the two-phase registry of item types. Mutable until first use,
//     immutable and container-registered afterwards.
//   - Container: the injection surface a builder depends on. A dig-backed
//     implementation ships with the package; any container can participate by
//     implementing the interface.
//   - Constructor: the strategy that turns resolved items into a collection
//     value. Slices of the item type need no constructor; anything else takes
//     an explicit one.
//
// # Basic Usage
//
// Create a container, a builder for your item and collection types, configure
// the type list, and build:
//
//	container := collections.NewDigContainer()
//
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
//
// The first CreateCollection call seals the builder: the configured list is
// snapshotted, every type is registered with the container, and later
// Configure calls fail with SealedError. Every call builds a fresh collection
// from instances resolved at call time.
//
// # Item Construction
//
// Sealing registers each item type with a synthesized zero-value constructor
// unless a factory was provided first. Items with dependencies get real
// factories:
//
//	container.Provide(func(db *sql.DB) *DatabaseCheck {
//	    return &DatabaseCheck{db: db}
//	}, collections.Transient)
//
// # Ordering and Filtering
//
// An ordering hook runs once at sealing time and decides the final order and
// membership of the sealed set:
//
//	builder, err := collections.New[HealthCheck, []HealthCheck](container,
//	    collections.WithOrder(collections.WeightedBy(weightOf)),
//	)
//
// # Collection Lifetime
//
// Each builder registers a factory for its collection type with the
// container. WithLifetime decides whether the container shares one collection
// instance (Singleton, the default) or builds one per resolution (Transient).
// A collection type can be claimed by at most one builder per container;
// a second claim fails with AlreadyRegisteredError.
//
// # Thread Safety
//
// Builders are safe for concurrent use. Configuration and sealing share one
// lock, sealing is idempotent under concurrency, and the sealed set is read
// without locking once published.
//
// # Error Handling
//
// The package reports failures through typed errors:
//   - CapabilityError: a type is not usable as an item of the collection
//   - SealedError: configuration attempted after sealing
//   - AlreadyRegisteredError: the collection type already has a builder
//   - ConstructionError: collection assembly failed or no constructor exists
package collections
