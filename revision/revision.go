// Package revision classifies the Raspberry Pi board the process runs on.
// Revision 1 boards route three header pins to different chip lines, so the
// class decides which pin table is used.
package revision

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Class is the board revision class, either Class1 or Class2
type Class int

const (
	Class1 Class = 1
	Class2 Class = 2
)

// DefaultPath is the system information file that holds the Revision line
const DefaultPath = "/proc/cpuinfo"

var (
	// ErrorNoRevision is returned when the input does not contain a Revision line
	ErrorNoRevision = errors.New("No Revision line found")
	// ErrorInvalidRevision is returned when the Revision field is not hexadecimal
	ErrorInvalidRevision = errors.New("Revision is not a hexadecimal number")
)

func (c Class) String() string {
	return "rev" + strconv.Itoa(int(c))
}

// ClassFromCode maps a raw revision code to its class. Codes below 3 are
// revision 1 boards.
func ClassFromCode(code uint64) Class {
	if code < 3 {
		return Class1
	}
	return Class2
}

// ParseCode returns the raw hexadecimal revision code found in r
func ParseCode(r io.Reader) (uint64, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Revision") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return 0, ErrorInvalidRevision
		}

		field := strings.TrimSpace(parts[1])
		code, err := strconv.ParseUint(field, 16, 64)
		if err != nil {
			return 0, ErrorInvalidRevision
		}
		return code, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, ErrorNoRevision
}

// Parse reads system information from r and returns the board class
func Parse(r io.Reader) (Class, error) {
	code, err := ParseCode(r)
	if err != nil {
		return 0, err
	}
	return ClassFromCode(code), nil
}

// Detect parses the file at path
func Detect(path string) (Class, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return Parse(file)
}

var (
	currentOnce  sync.Once
	currentClass Class
	currentErr   error
)

// Current returns the class of the running board. DefaultPath is only read the
// first time; the outcome, including a failure, holds for the process lifetime.
func Current() (Class, error) {
	currentOnce.Do(func() {
		currentClass, currentErr = Detect(DefaultPath)
	})
	return currentClass, currentErr
}
