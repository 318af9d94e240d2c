package collections

import (
	"encoding/json"
	"fmt"
)

// Lifetime specifies how the container caches instances produced by a
// registration. For a collection builder it governs the registration of the
// produced collection type itself; item types are always registered as
// Transient so that every CreateItems call resolves instances at call time.
type Lifetime int

const (
	// Singleton specifies that a single instance is created on first
	// resolution and shared for the lifetime of the container.
	Singleton Lifetime = iota

	// Transient specifies that a new instance is created every time the
	// registration is resolved.
	Transient
)

// String returns the string representation of the Lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "Singleton"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid checks if the lifetime is valid.
func (l Lifetime) IsValid() bool {
	return l >= Singleton && l <= Transient
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Singleton", "singleton":
		*l = Singleton
	case "Transient", "transient":
		*l = Transient
	default:
		return LifetimeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lifetime) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lifetime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return l.UnmarshalText([]byte(s))
}
