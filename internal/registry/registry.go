// Package registry keeps named values that are registered once and looked
// up concurrently.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alphadose/haxmap"
)

var (
	ErrNotFound  = errors.New("not registered")
	ErrDuplicate = errors.New("already registered")
)

type Registry[T any] struct {
	kind   string
	values *haxmap.Map[string, T]
}

// New creates an empty registry. kind names the values in error messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:   kind,
		values: haxmap.New[string, T](),
	}
}

func (r *Registry[T]) Register(name string, value T) error {
	if name == "" {
		return fmt.Errorf("%s name is required", r.kind)
	}
	if _, loaded := r.values.GetOrCompute(name, func() T { return value }); loaded {
		return fmt.Errorf("%s %q: %w", r.kind, name, ErrDuplicate)
	}
	return nil
}

func (r *Registry[T]) Lookup(name string) (T, error) {
	value, ok := r.values.Get(name)
	if !ok {
		return value, fmt.Errorf("%s %q: %w", r.kind, name, ErrNotFound)
	}
	return value, nil
}

// Names lists the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

func (r *Registry[T]) Len() int {
	return int(r.values.Len())
}
