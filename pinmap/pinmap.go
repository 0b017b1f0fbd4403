// Package pinmap translates physical header pin numbers to the line numbers
// of the BCM283x GPIO controller.
package pinmap

import (
	"sort"

	"github.com/BertoldVdb/go-pigpio/revision"
)

var baseMapping = map[int]int{
	3:  0,
	5:  1,
	7:  4,
	8:  14,
	10: 15,
	11: 17,
	12: 18,
	13: 21,
	15: 22,
	16: 23,
	18: 24,
	19: 10,
	21: 9,
	22: 25,
	23: 11,
	24: 8,
	26: 7,

	/* Model A+ and B+ extension header */
	29: 5,
	31: 6,
	32: 12,
	33: 13,
	35: 19,
	36: 16,
	37: 26,
	38: 20,
	40: 21,
}

var class2Overrides = map[int]int{
	3:  2,
	5:  3,
	13: 27,
}

// Table is an immutable physical to chip pin mapping
type Table struct {
	class   revision.Class
	mapping map[int]int
}

// New returns the table for boards of the given revision class
func New(class revision.Class) *Table {
	t := &Table{
		class:   class,
		mapping: make(map[int]int, len(baseMapping)),
	}

	for physical, chip := range baseMapping {
		t.mapping[physical] = chip
	}

	if class == revision.Class2 {
		for physical, chip := range class2Overrides {
			t.mapping[physical] = chip
		}
	}

	return t
}

// Class returns the revision class the table was built for
func (t *Table) Class() revision.Class {
	return t.class
}

// Lookup returns the chip pin for a physical pin. ok is false for pins that
// are not GPIO capable (power, ground or out of range).
func (t *Table) Lookup(physical int) (chip int, ok bool) {
	chip, ok = t.mapping[physical]
	return chip, ok
}

// Contains reports whether physical is a mapped pin
func (t *Table) Contains(physical int) bool {
	_, ok := t.mapping[physical]
	return ok
}

// Pins returns all mapped physical pins in ascending order
func (t *Table) Pins() []int {
	pins := make([]int, 0, len(t.mapping))
	for physical := range t.mapping {
		pins = append(pins, physical)
	}
	sort.Ints(pins)
	return pins
}
