package collections_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/cnguyen0691/collections"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// Widget is the item capability used throughout the tests.
type Widget interface {
	Name() string
}

type AlphaWidget struct {
	Tag string
}

func (*AlphaWidget) Name() string { return "alpha" }

type BetaWidget struct{}

func (*BetaWidget) Name() string { return "beta" }

type GammaWidget struct{}

func (*GammaWidget) Name() string { return "gamma" }

type DeltaWidget struct{}

func (*DeltaWidget) Name() string { return "delta" }

// Gadget does not implement Widget.
type Gadget struct{}

// WidgetSet is a non-slice collection type used with explicit constructors.
type WidgetSet struct {
	Widgets []Widget
}

// WidgetBag is a non-slice collection type used with the package-level
// constructor registry.
type WidgetBag struct {
	Widgets []Widget
}

// WidgetCrate is a non-slice collection type with no construction path.
type WidgetCrate struct {
	Widgets []Widget
}

var (
	widgetType = collections.TypeOf[Widget]()
	alphaType  = collections.TypeOf[*AlphaWidget]()
	betaType   = collections.TypeOf[*BetaWidget]()
	gammaType  = collections.TypeOf[*GammaWidget]()
	deltaType  = collections.TypeOf[*DeltaWidget]()
	gadgetType = collections.TypeOf[*Gadget]()
)

// widgetNames projects a resolved collection to the names of its members.
func widgetNames(t *testing.T, widgets []Widget) []string {
	t.Helper()

	names := make([]string, 0, len(widgets))
	for _, w := range widgets {
		require.NotNil(t, w)
		names = append(names, w.Name())
	}
	return names
}

// newWidgetBuilder creates a fresh container and a []Widget builder on it.
func newWidgetBuilder(t *testing.T, opts ...collections.Option) (*collections.Builder, *collections.DigContainer) {
	t.Helper()

	container := collections.NewDigContainer()
	builder, err := collections.New[Widget, []Widget](container, opts...)
	require.NoError(t, err)
	return builder, container
}

// recordingContainer wraps a Container and records RegisterType calls, so
// tests can assert how often sealing registered each item type.
type recordingContainer struct {
	collections.Container

	mu         sync.Mutex
	registered []reflect.Type
}

func newRecordingContainer() *recordingContainer {
	return &recordingContainer{Container: collections.NewDigContainer()}
}

func (c *recordingContainer) RegisterType(t reflect.Type) error {
	c.mu.Lock()
	c.registered = append(c.registered, t)
	c.mu.Unlock()

	return c.Container.RegisterType(t)
}

func (c *recordingContainer) registeredTypes() []reflect.Type {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]reflect.Type, len(c.registered))
	copy(out, c.registered)
	return out
}
