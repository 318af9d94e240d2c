package collections

import (
	"reflect"
	"sort"
)

// OrderHook decides the final order and membership of a builder's sealed
// type set. It is consulted exactly once, at sealing time, with a copy of
// the configured list; the sequence it returns becomes the sealed set after
// every member passes the item capability check.
//
// The default hook is the identity: sealed order is configured order.
type OrderHook func(types []reflect.Type) ([]reflect.Type, error)

// WeightedBy returns an OrderHook that sorts types by ascending weight.
// The sort is stable, so types with equal weight keep their configured
// order.
func WeightedBy(weight func(t reflect.Type) int) OrderHook {
	return func(types []reflect.Type) ([]reflect.Type, error) {
		sort.SliceStable(types, func(i, j int) bool {
			return weight(types[i]) < weight(types[j])
		})
		return types, nil
	}
}

// Filter returns an OrderHook that keeps only types for which keep returns
// true, preserving order. Types dropped here are never registered with the
// container, but remain visible to Has, which reads the configured list.
func Filter(keep func(t reflect.Type) bool) OrderHook {
	return func(types []reflect.Type) ([]reflect.Type, error) {
		kept := types[:0]
		for _, t := range types {
			if keep(t) {
				kept = append(kept, t)
			}
		}
		return kept, nil
	}
}

// ChainOrder composes hooks left to right: the output of one is the input of
// the next.
func ChainOrder(hooks ...OrderHook) OrderHook {
	return func(types []reflect.Type) ([]reflect.Type, error) {
		var err error
		for _, hook := range hooks {
			if hook == nil {
				continue
			}

			types, err = hook(types)
			if err != nil {
				return nil, err
			}
		}
		return types, nil
	}
}
