package gpio

import (
	"sort"
	"sync"
)

// Registry remembers which physical pins this process exported and in which
// direction. It is only changed by Open and Close.
type Registry struct {
	sync.Mutex

	outputPins map[int]struct{}
	inputPins  map[int]struct{}
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		outputPins: make(map[int]struct{}),
		inputPins:  make(map[int]struct{}),
	}
}

func (r *Registry) add(pin int, direction Direction) {
	r.Lock()
	defer r.Unlock()

	if direction == In {
		delete(r.outputPins, pin)
		r.inputPins[pin] = struct{}{}
	} else {
		delete(r.inputPins, pin)
		r.outputPins[pin] = struct{}{}
	}
}

func (r *Registry) remove(pin int) {
	r.Lock()
	defer r.Unlock()

	delete(r.outputPins, pin)
	delete(r.inputPins, pin)
}

// Exported reports whether pin was exported through this registry
func (r *Registry) Exported(pin int) bool {
	_, ok := r.Direction(pin)
	return ok
}

// Direction returns the direction the pin was exported with
func (r *Registry) Direction(pin int) (Direction, bool) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.inputPins[pin]; ok {
		return In, true
	}
	if _, ok := r.outputPins[pin]; ok {
		return Out, true
	}
	return "", false
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Inputs returns the pins exported as input
func (r *Registry) Inputs() []int {
	r.Lock()
	defer r.Unlock()
	return sortedKeys(r.inputPins)
}

// Outputs returns the pins exported as output
func (r *Registry) Outputs() []int {
	r.Lock()
	defer r.Unlock()
	return sortedKeys(r.outputPins)
}
