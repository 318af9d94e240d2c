package collections

import (
	"fmt"
	"reflect"
	"slices"
)

// TypeList is the ordered list of candidate item types held by a builder
// while it is still configurable. Every type entering the list must be
// usable as the builder's item type; a violation fails the whole mutation
// and leaves the list unchanged.
//
// TypeList is not safe for concurrent use on its own. Builders only expose
// it through Configure, which runs mutations under the builder lock.
type TypeList struct {
	itemType reflect.Type
	types    []reflect.Type
}

func newTypeList(itemType reflect.Type) *TypeList {
	return &TypeList{itemType: itemType}
}

func (l *TypeList) clone() *TypeList {
	return &TypeList{itemType: l.itemType, types: slices.Clone(l.types)}
}

// check verifies that t is usable as the item type.
func (l *TypeList) check(t reflect.Type) error {
	if t == nil {
		return ValidationError{ServiceType: nil, Cause: ErrTypeNil}
	}
	if !t.AssignableTo(l.itemType) {
		return CapabilityError{ItemType: l.itemType, Offered: t}
	}
	return nil
}

// ItemType returns the item type every member of the list must satisfy.
func (l *TypeList) ItemType() reflect.Type {
	return l.itemType
}

// Append adds types to the end of the list, in argument order.
func (l *TypeList) Append(types ...reflect.Type) error {
	for _, t := range types {
		if err := l.check(t); err != nil {
			return err
		}
	}

	l.types = append(l.types, types...)
	return nil
}

// Insert adds a type at the given position.
func (l *TypeList) Insert(index int, t reflect.Type) error {
	if err := l.check(t); err != nil {
		return err
	}
	if index < 0 || index > len(l.types) {
		return ValidationError{
			ServiceType: t,
			Cause:       fmt.Errorf("index %d out of range [0, %d]", index, len(l.types)),
		}
	}

	l.types = slices.Insert(l.types, index, t)
	return nil
}

// InsertBefore adds a type immediately before the first occurrence of marker.
func (l *TypeList) InsertBefore(marker, t reflect.Type) error {
	index, err := l.indexOf(marker, t)
	if err != nil {
		return err
	}

	l.types = slices.Insert(l.types, index, t)
	return nil
}

// InsertAfter adds a type immediately after the first occurrence of marker.
func (l *TypeList) InsertAfter(marker, t reflect.Type) error {
	index, err := l.indexOf(marker, t)
	if err != nil {
		return err
	}

	l.types = slices.Insert(l.types, index+1, t)
	return nil
}

func (l *TypeList) indexOf(marker, t reflect.Type) (int, error) {
	if err := l.check(t); err != nil {
		return 0, err
	}
	if err := l.check(marker); err != nil {
		return 0, err
	}

	index := slices.Index(l.types, marker)
	if index < 0 {
		return 0, ValidationError{
			ServiceType: marker,
			Cause:       fmt.Errorf("type %s is not in the list", formatType(marker)),
		}
	}
	return index, nil
}

// Remove deletes every occurrence of the given types from the list.
func (l *TypeList) Remove(types ...reflect.Type) error {
	for _, t := range types {
		if err := l.check(t); err != nil {
			return err
		}
	}

	for _, t := range types {
		l.types = slices.DeleteFunc(l.types, func(existing reflect.Type) bool {
			return existing == t
		})
	}
	return nil
}

// Clear removes every type from the list.
func (l *TypeList) Clear() {
	l.types = l.types[:0]
}

// Has reports whether t is in the list. It fails with CapabilityError when t
// is not usable as the item type, regardless of presence.
func (l *TypeList) Has(t reflect.Type) (bool, error) {
	if err := l.check(t); err != nil {
		return false, err
	}
	return slices.Contains(l.types, t), nil
}

// Types returns a copy of the list.
func (l *TypeList) Types() []reflect.Type {
	return slices.Clone(l.types)
}

// Len returns the number of types in the list.
func (l *TypeList) Len() int {
	return len(l.types)
}

// Mutation is a single configuration action applied to a builder's type list
// through Configure. Mutations compose: a batch applies several in order and
// names the group for error context.
type Mutation func(*TypeList) error

// Append creates a Mutation that adds types to the end of the list.
func Append(types ...reflect.Type) Mutation {
	return func(l *TypeList) error {
		return l.Append(types...)
	}
}

// Insert creates a Mutation that adds a type at the given position.
func Insert(index int, t reflect.Type) Mutation {
	return func(l *TypeList) error {
		return l.Insert(index, t)
	}
}

// InsertBefore creates a Mutation that adds a type before the first
// occurrence of marker.
func InsertBefore(marker, t reflect.Type) Mutation {
	return func(l *TypeList) error {
		return l.InsertBefore(marker, t)
	}
}

// InsertAfter creates a Mutation that adds a type after the first occurrence
// of marker.
func InsertAfter(marker, t reflect.Type) Mutation {
	return func(l *TypeList) error {
		return l.InsertAfter(marker, t)
	}
}

// Remove creates a Mutation that deletes types from the list.
func Remove(types ...reflect.Type) Mutation {
	return func(l *TypeList) error {
		return l.Remove(types...)
	}
}

// Clear creates a Mutation that empties the list.
func Clear() Mutation {
	return func(l *TypeList) error {
		l.Clear()
		return nil
	}
}

// Batch groups mutations under a name so related configuration can be reused
// across builders and failures carry the group's context.
//
// Example:
//
//	var HealthChecks = collections.Batch("health-checks",
//	    collections.Append(collections.TypeOf[*DatabaseCheck]()),
//	    collections.Append(collections.TypeOf[*QueueCheck]()),
//	)
//
//	err := builder.Configure(HealthChecks)
func Batch(name string, mutations ...Mutation) Mutation {
	return func(l *TypeList) error {
		for _, mutation := range mutations {
			if mutation == nil {
				continue
			}

			if err := mutation(l); err != nil {
				return BatchError{Batch: name, Cause: err}
			}
		}

		return nil
	}
}
