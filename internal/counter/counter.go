// Package counter implements LaTeX counters with reset dependencies.
package counter

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for counter operations.
var (
	ErrDuplicateCounter = errors.New("counter already defined")
	ErrNoSuchCounter    = errors.New("no such counter")
	ErrResetCycle       = errors.New("counter reset cycle")
	ErrOutOfRange       = errors.New("counter value out of range")
)

// Registry holds counter values and the reset graph. Stepping a counter
// zeroes every counter transitively reset by it.
type Registry struct {
	values map[string]int
	resets map[string][]string
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]int),
		resets: make(map[string][]string),
	}
}

// New defines counter c with value 0. If parent is not empty, c is reset
// whenever parent is stepped.
func (r *Registry) New(c, parent string) error {
	if _, ok := r.values[c]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCounter, c)
	}
	if parent != "" && !r.Has(parent) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, parent)
	}
	r.values[c] = 0
	r.order = append(r.order, c)
	if parent != "" {
		return r.AddToReset(c, parent)
	}
	return nil
}

// Has reports whether c is defined.
func (r *Registry) Has(c string) bool {
	_, ok := r.values[c]
	return ok
}

// Names returns all counters in definition order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// AddToReset makes c reset whenever parent is stepped.
func (r *Registry) AddToReset(c, parent string) error {
	if !r.Has(c) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, c)
	}
	if !r.Has(parent) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, parent)
	}
	if slices.Contains(r.resets[parent], c) {
		return nil
	}
	r.resets[parent] = append(r.resets[parent], c)
	return nil
}

// Set assigns a value.
func (r *Registry) Set(c string, v int) error {
	if !r.Has(c) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, c)
	}
	r.values[c] = v
	return nil
}

// Add adds delta to a counter without touching dependents.
func (r *Registry) Add(c string, delta int) error {
	if !r.Has(c) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, c)
	}
	r.values[c] += delta
	return nil
}

// Get returns the current value.
func (r *Registry) Get(c string) (int, error) {
	v, ok := r.values[c]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchCounter, c)
	}
	return v, nil
}

// Step increments c and clears its reset subtree.
func (r *Registry) Step(c string) error {
	if !r.Has(c) {
		return fmt.Errorf("%w: %s", ErrNoSuchCounter, c)
	}
	r.values[c]++
	return r.clear(c, map[string]bool{c: true})
}

// clear zeroes every counter below c. A counter reached twice on the same
// path means the reset graph has a cycle.
func (r *Registry) clear(c string, path map[string]bool) error {
	for _, dep := range r.resets[c] {
		if path[dep] {
			return fmt.Errorf("%w: %s resets %s", ErrResetCycle, c, dep)
		}
		r.values[dep] = 0
		path[dep] = true
		err := r.clear(dep, path)
		delete(path, dep)
		if err != nil {
			return err
		}
	}
	return nil
}
