package pinmap

import (
	"testing"

	"github.com/BertoldVdb/go-pigpio/revision"
)

func TestClass1Mapping(t *testing.T) {
	table := New(revision.Class1)

	expect := map[int]int{3: 0, 5: 1, 13: 21, 11: 17, 40: 21}
	for physical, chip := range expect {
		got, ok := table.Lookup(physical)
		if !ok || got != chip {
			t.Error("Pin", physical, "mapped to", got, ok, "expected", chip)
		}
	}
}

func TestClass2Overrides(t *testing.T) {
	table := New(revision.Class2)

	expect := map[int]int{3: 2, 5: 3, 13: 27, 11: 17, 7: 4}
	for physical, chip := range expect {
		got, ok := table.Lookup(physical)
		if !ok || got != chip {
			t.Error("Pin", physical, "mapped to", got, ok, "expected", chip)
		}
	}

	/* The class 1 table must not be affected by building a class 2 one */
	if chip, _ := New(revision.Class1).Lookup(3); chip != 0 {
		t.Error("Class 1 table was modified", chip)
	}
}

func TestUnmapped(t *testing.T) {
	table := New(revision.Class2)

	for _, physical := range []int{-1, 0, 1, 2, 4, 6, 9, 14, 17, 20, 25, 27, 28, 30, 34, 39, 41, 100} {
		if _, ok := table.Lookup(physical); ok {
			t.Error("Pin", physical, "should not be mapped")
		}
		if table.Contains(physical) {
			t.Error("Contains returned true for", physical)
		}
	}
}

func TestPins(t *testing.T) {
	pins := New(revision.Class1).Pins()
	if len(pins) != 26 {
		t.Fatal("Expected 26 pins, got", len(pins))
	}

	for i := 1; i < len(pins); i++ {
		if pins[i-1] >= pins[i] {
			t.Error("Pins are not sorted", pins)
			break
		}
	}

	if pins[0] != 3 || pins[len(pins)-1] != 40 {
		t.Error("Unexpected pin range", pins)
	}
}
