package collections

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type descTestService struct {
	Value int
}

type descTestIface interface {
	DoWork()
}

func TestNewDescriptor(t *testing.T) {
	tests := []struct {
		name        string
		constructor any
		lifetime    Lifetime
		wantErr     assert.ErrorAssertionFunc
		wantType    reflect.Type
	}{
		{
			name:        "plain constructor",
			constructor: func() *descTestService { return &descTestService{} },
			lifetime:    Singleton,
			wantErr:     assert.NoError,
			wantType:    reflect.TypeOf((*descTestService)(nil)),
		},
		{
			name:        "constructor with error return",
			constructor: func() (*descTestService, error) { return &descTestService{}, nil },
			lifetime:    Transient,
			wantErr:     assert.NoError,
			wantType:    reflect.TypeOf((*descTestService)(nil)),
		},
		{
			name:        "constructor with dependencies",
			constructor: func(dep *descTestService) descTestIface { return nil },
			lifetime:    Transient,
			wantErr:     assert.NoError,
			wantType:    reflect.TypeOf((*descTestIface)(nil)).Elem(),
		},
		{
			name:        "nil constructor",
			constructor: nil,
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "non-function constructor",
			constructor: &descTestService{},
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "variadic constructor",
			constructor: func(deps ...*descTestService) *descTestService { return nil },
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "no return values",
			constructor: func() {},
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "error-only return",
			constructor: func() error { return nil },
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "too many return values",
			constructor: func() (*descTestService, *descTestService, error) { return nil, nil, nil },
			lifetime:    Singleton,
			wantErr:     assert.Error,
		},
		{
			name:        "invalid lifetime",
			constructor: func() *descTestService { return nil },
			lifetime:    Lifetime(99),
			wantErr:     assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor, err := newDescriptor(tt.constructor, tt.lifetime)
			tt.wantErr(t, err)

			if err != nil {
				assert.Nil(t, descriptor)
				return
			}

			require.NotNil(t, descriptor)
			assert.Equal(t, tt.wantType, descriptor.Type)
			assert.Equal(t, tt.lifetime, descriptor.Lifetime)
			assert.False(t, descriptor.Synthesized)
			assert.NoError(t, descriptor.Validate())
		})
	}
}

func TestSynthesizeDescriptor(t *testing.T) {
	t.Run("pointer to struct", func(t *testing.T) {
		descriptor, err := synthesizeDescriptor(reflect.TypeOf((*descTestService)(nil)))
		require.NoError(t, err)

		assert.True(t, descriptor.Synthesized)
		assert.Equal(t, Transient, descriptor.Lifetime)
		require.NoError(t, descriptor.Validate())

		results := descriptor.Constructor.Call(nil)
		require.Len(t, results, 1)

		instance, ok := results[0].Interface().(*descTestService)
		require.True(t, ok)
		assert.NotNil(t, instance)
	})

	t.Run("struct value", func(t *testing.T) {
		descriptor, err := synthesizeDescriptor(reflect.TypeOf(descTestService{}))
		require.NoError(t, err)

		results := descriptor.Constructor.Call(nil)
		require.Len(t, results, 1)
		assert.Equal(t, descTestService{}, results[0].Interface())
	})

	t.Run("interface type", func(t *testing.T) {
		_, err := synthesizeDescriptor(reflect.TypeOf((*descTestIface)(nil)).Elem())
		require.Error(t, err)

		var validation ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("nil type", func(t *testing.T) {
		_, err := synthesizeDescriptor(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeNil)
	})
}

func TestDescriptor_Validate(t *testing.T) {
	valid, err := newDescriptor(func() *descTestService { return nil }, Singleton)
	require.NoError(t, err)

	t.Run("valid descriptor", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("nil type", func(t *testing.T) {
		descriptor := &Descriptor{}
		assert.ErrorIs(t, descriptor.Validate(), ErrTypeNil)
	})

	t.Run("missing constructor", func(t *testing.T) {
		descriptor := &Descriptor{Type: valid.Type, Lifetime: Singleton}
		assert.ErrorIs(t, descriptor.Validate(), ErrConstructorNil)
	})

	t.Run("invalid lifetime", func(t *testing.T) {
		descriptor := &Descriptor{
			Type:            valid.Type,
			Lifetime:        Lifetime(99),
			Constructor:     valid.Constructor,
			ConstructorType: valid.ConstructorType,
		}

		var lifetimeErr LifetimeError
		assert.ErrorAs(t, descriptor.Validate(), &lifetimeErr)
	})
}

func TestDescriptor_String(t *testing.T) {
	descriptor, err := newDescriptor(func() *descTestService { return nil }, Transient)
	require.NoError(t, err)

	assert.Equal(t, "*descTestService (Transient)", descriptor.String())
}

func TestDescriptor_ConstructorShapes(t *testing.T) {
	// Constructors returning a value whose type implements error in position
	// zero alone must be rejected, a two-value form with a trailing error is
	// accepted.
	_, err := newDescriptor(func() (error, error) { return nil, nil }, Singleton)
	assert.Error(t, err)

	_, err = newDescriptor(func() (*descTestService, int) { return nil, 0 }, Singleton)
	assert.Error(t, err)

	descriptor, err := newDescriptor(func() (*descTestService, error) {
		return nil, errors.New("boom")
	}, Singleton)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf((*descTestService)(nil)), descriptor.Type)
}
