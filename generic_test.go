package collections_test

import (
	"reflect"
	"testing"

	"github.com/cnguyen0691/collections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf((*AlphaWidget)(nil)), collections.TypeOf[*AlphaWidget]())

	// reflect.TypeOf on a value cannot name an interface type; TypeOf can.
	widget := collections.TypeOf[Widget]()
	assert.Equal(t, reflect.Interface, widget.Kind())
	assert.Equal(t, "Widget", widget.Name())
}

func TestHas_Typed(t *testing.T) {
	builder, _ := newWidgetBuilder(t)
	require.NoError(t, builder.Configure(collections.Append(alphaType)))

	assert.True(t, collections.Has[*AlphaWidget](builder))
	assert.False(t, collections.Has[*BetaWidget](builder))

	// A type outside the capability can never be present, so the typed form
	// reports absence instead of a capability violation.
	assert.False(t, collections.Has[*Gadget](builder))
}

func TestCreateItems_Typed(t *testing.T) {
	builder, _ := newWidgetBuilder(t)
	require.NoError(t, builder.Configure(collections.Append(alphaType, betaType)))

	items, err := collections.CreateItems[Widget](builder)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, widgetNames(t, items))
}

func TestCreateCollection_Typed(t *testing.T) {
	builder, _ := newWidgetBuilder(t)
	require.NoError(t, builder.Configure(collections.Append(gammaType)))

	collection, err := collections.CreateCollection[[]Widget](builder)
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, widgetNames(t, collection))

	// Asking for the wrong collection type fails the assertion, not the build.
	_, err = collections.CreateCollection[WidgetSet](builder)
	assert.Error(t, err)
}

func TestMustCreateCollection(t *testing.T) {
	t.Run("returns the collection", func(t *testing.T) {
		builder, _ := newWidgetBuilder(t)
		require.NoError(t, builder.Configure(collections.Append(alphaType)))

		collection := collections.MustCreateCollection[[]Widget](builder)
		assert.Len(t, collection, 1)
	})

	t.Run("panics when construction is unavailable", func(t *testing.T) {
		container := collections.NewDigContainer()
		builder, err := collections.New[Widget, WidgetCrate](container)
		require.NoError(t, err)

		assert.Panics(t, func() {
			collections.MustCreateCollection[WidgetCrate](builder)
		})
	})
}

func TestRegisterConstructor_Validation(t *testing.T) {
	assert.Error(t, collections.RegisterConstructor(nil, func(items []any) (any, error) {
		return nil, nil
	}))
	assert.Error(t, collections.RegisterConstructor(collections.TypeOf[WidgetSet](), nil))
	assert.Error(t, collections.RegisterConstructorFor[WidgetSet](nil))
}
