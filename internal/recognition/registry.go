package recognition

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateDetector is returned by Registry.Register when overwrite is
// disabled and the name is already taken. Match with errors.Is.
var ErrDuplicateDetector = errors.New("detector already registered")

// Registry owns the active detector set. It preserves registration order
// so analysis output is reproducible: dedup tie-breaks depend on which
// detector ran first, and Go map iteration order would make that random.
//
// Registry is not safe for concurrent use on its own; the Engine guards
// it with its own lock.
type Registry struct {
	order  []string
	byName map[string]Detector
}

// NewRegistry creates an empty detector registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Detector)}
}

// Register inserts or replaces the detector under its name. With
// overwrite disabled, a name collision returns ErrDuplicateDetector and
// leaves the registry untouched. Replacing keeps the original slot in the
// iteration order.
func (r *Registry) Register(d Detector, overwrite bool) error {
	name := d.Name()
	if _, exists := r.byName[name]; exists {
		if !overwrite {
			return fmt.Errorf("%w: %q", ErrDuplicateDetector, name)
		}
		r.byName[name] = d
		return nil
	}
	r.order = append(r.order, name)
	r.byName[name] = d
	return nil
}

// Unregister removes the named detector, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns all registered detector names sorted lexicographically.
// Sorted for stable introspection output — execution order is the
// registration order, not this.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int {
	return len(r.order)
}

// detectors returns the active detectors in registration order.
func (r *Registry) detectors() []Detector {
	out := make([]Detector, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
