package gpio

import (
	"fmt"
	"strconv"
	"strings"

	conngpio "periph.io/x/conn/v3/gpio"

	"github.com/BertoldVdb/go-pigpio/pinmap"
)

// Direction is the sysfs direction of an exported pin
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Options is the parsed form of an open options string
type Options struct {
	Direction Direction
	Pull      conngpio.Pull
}

// ExportMode controls whether Read and Write export the pin first
type ExportMode int

const (
	// ExportIfNeeded exports the pin unless this process already exported it
	ExportIfNeeded ExportMode = iota
	// ExportOff never exports, the pin must have been opened before
	ExportOff
	// ExportForce always exports again
	ExportForce
)

func (m ExportMode) String() string {
	switch m {
	case ExportOff:
		return "off"
	case ExportForce:
		return "force"
	}
	return "needed"
}

// ParseExportMode parses "", "needed", "off" or "force"
func ParseExportMode(mode string) (ExportMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "needed":
		return ExportIfNeeded, nil
	case "off":
		return ExportOff, nil
	case "force":
		return ExportForce, nil
	}
	return ExportIfNeeded, fmt.Errorf("%w: %q", ErrorInvalidExportMode, mode)
}

// SanitizePin checks that value is an integer, or a string holding one, that
// is a physical pin of the table. It returns the pin as int.
func SanitizePin(value interface{}, table *pinmap.Table) (int, error) {
	var pin int

	switch v := value.(type) {
	case int:
		pin = v
	case int8:
		pin = int(v)
	case int16:
		pin = int(v)
	case int32:
		pin = int(v)
	case int64:
		pin = int(v)
	case uint:
		pin = int(v)
	case uint8:
		pin = int(v)
	case uint16:
		pin = int(v)
	case uint32:
		pin = int(v)
	case uint64:
		pin = int(v)
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrorInvalidPin, v)
		}
		pin = p
	default:
		return 0, fmt.Errorf("%w: %v", ErrorInvalidPin, value)
	}

	if !table.Contains(pin) {
		return 0, fmt.Errorf("%w: %d", ErrorInvalidPin, pin)
	}

	return pin, nil
}

// SanitizeDirection normalizes in/input and out/output, ignoring case and
// surrounding space. An empty direction means Out.
func SanitizeDirection(direction string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "in", "input":
		return In, nil
	case "out", "output", "":
		return Out, nil
	}
	return "", fmt.Errorf("%w: %q", ErrorInvalidDirection, direction)
}

// ParseOptions parses a space separated list of open options. "in" or "input"
// select the input direction, "pullup"/"up" and "pulldown"/"down" select the
// pull resistor. Parsing is lenient: unknown tokens are ignored so option
// strings written for other tools keep working. The defaults are Out and Float.
func ParseOptions(options string) Options {
	result := Options{
		Direction: Out,
		Pull:      conngpio.Float,
	}

	for _, token := range strings.Split(options, " ") {
		switch token {
		case "in", "input":
			result.Direction = In
		case "pullup", "up":
			result.Pull = conngpio.PullUp
		case "pulldown", "down":
			result.Pull = conngpio.PullDown
		}
	}

	return result
}
