// Package gpio controls Raspberry Pi header pins through the sysfs GPIO
// interface. Pins are exported and unexported by the privileged gpio-admin
// helper; direction and value are then accessed as plain files.
//
// Pins are addressed by their physical header number. Every operation returns
// a result.Future and also calls the optional callback with the same outcome,
// so callers can either wait or be notified.
package gpio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	conngpio "periph.io/x/conn/v3/gpio"

	"github.com/BertoldVdb/go-pigpio/gpioadmin"
	"github.com/BertoldVdb/go-pigpio/logrusconfig"
	"github.com/BertoldVdb/go-pigpio/pinmap"
	"github.com/BertoldVdb/go-pigpio/result"
	"github.com/BertoldVdb/go-pigpio/revision"
)

// Callback receives the outcome of operations without a value
type Callback func(err error)

// ReadCallback receives the value read from a pin
type ReadCallback func(value int, err error)

// DirectionCallback receives the direction read from a pin
type DirectionCallback func(direction Direction, err error)

// Controller performs pin operations. It is safe for concurrent use, but
// operations on the same pin are not serialized.
type Controller struct {
	root     string
	helper   Helper
	table    *pinmap.Table
	registry *Registry
	log      *logrus.Entry
}

func resolveClass(config *Config) (revision.Class, error) {
	if config.Class != 0 {
		if config.Class != revision.Class1 && config.Class != revision.Class2 {
			return 0, fmt.Errorf("%w: %d", ErrorInvalidClass, config.Class)
		}
		return config.Class, nil
	}
	if config.CPUInfo == "" || config.CPUInfo == revision.DefaultPath {
		return revision.Current()
	}
	return revision.Detect(config.CPUInfo)
}

// New creates a Controller. It fails when the board revision cannot be determined,
// without it the pin table is unknown.
func New(config Config) (*Controller, error) {
	class, err := resolveClass(&config)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		root:     config.SysfsRoot,
		helper:   config.Helper,
		table:    pinmap.New(class),
		registry: config.Registry,
		log:      config.Logger,
	}

	if c.root == "" {
		c.root = DefaultSysfsRoot
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.log == nil {
		c.log = logrusconfig.GetLogger(logrus.InfoLevel).WithField("prefix", "gpio")
	}
	if c.helper == nil {
		c.helper = &gpioadmin.Admin{
			Binary: config.HelperBinary,
			Logger: c.log,
		}
	}

	c.log.Debugf("Using %s pin table, sysfs at %s", class, c.root)

	return c, nil
}

// Revision returns the board revision class the pin table was chosen for
func (c *Controller) Revision() revision.Class {
	return c.table.Class()
}

// Pins returns the physical pins that can be used
func (c *Controller) Pins() []int {
	return c.table.Pins()
}

// Registry returns the registry tracking exported pins
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Exported reports whether this process exported pin
func (c *Controller) Exported(pin int) bool {
	return c.registry.Exported(pin)
}

// ChipPin validates a physical pin and returns its chip pin
func (c *Controller) ChipPin(pin int) (int, error) {
	if _, err := SanitizePin(pin, c.table); err != nil {
		return 0, err
	}
	chip, _ := c.table.Lookup(pin)
	return chip, nil
}

/* run completes the future with err right away, or with the result of work from a new goroutine */
func run[T any](handler result.Handler[T], err error, work func() (T, error)) *result.Future[T] {
	if err != nil {
		var zero T
		return result.Resolved(zero, err).Then(handler)
	}
	return result.Go(work).Then(handler)
}

func (cb Callback) handler() result.Handler[struct{}] {
	if cb == nil {
		return nil
	}
	return func(_ struct{}, err error) {
		cb(err)
	}
}

func noValue(err error) (struct{}, error) {
	return struct{}{}, err
}

func (c *Controller) reportError(method string, pin int, err error) {
	c.log.WithFields(logrus.Fields{
		"method": method,
		"pin":    pin,
	}).WithError(err).Errorf("Error when trying to %s pin %d", method, pin)
}

func (c *Controller) open(method string, pin int, chip int, options Options) error {
	err := c.helper.Export(context.Background(), chip, options.Pull)
	if err != nil {
		c.reportError(method, pin, err)
		return err
	}

	c.registry.add(pin, options.Direction)

	return writeAttr(attrPath(c.root, chip, "direction"), string(options.Direction))
}

// Open exports pin with the given options (see ParseOptions) and then sets its
// direction. If the helper fails the direction is left alone.
func (c *Controller) Open(pin int, options string, cb Callback) *result.Future[struct{}] {
	chip, err := c.ChipPin(pin)
	opts := ParseOptions(options)

	return run(cb.handler(), err, func() (struct{}, error) {
		return noValue(c.open("open", pin, chip, opts))
	})
}

// Export is an alias of Open
func (c *Controller) Export(pin int, options string, cb Callback) *result.Future[struct{}] {
	return c.Open(pin, options, cb)
}

// Close unexports pin
func (c *Controller) Close(pin int, cb Callback) *result.Future[struct{}] {
	chip, err := c.ChipPin(pin)

	return run(cb.handler(), err, func() (struct{}, error) {
		err := c.helper.Unexport(context.Background(), chip)
		if err != nil {
			c.reportError("close", pin, err)
			return noValue(err)
		}

		c.registry.remove(pin)
		return noValue(nil)
	})
}

// Unexport is an alias of Close
func (c *Controller) Unexport(pin int, cb Callback) *result.Future[struct{}] {
	return c.Close(pin, cb)
}

// SetDirection changes the direction of an exported pin
func (c *Controller) SetDirection(pin int, direction string, cb Callback) *result.Future[struct{}] {
	chip, err := c.ChipPin(pin)

	var dir Direction
	if err == nil {
		dir, err = SanitizeDirection(direction)
	}

	return run(cb.handler(), err, func() (struct{}, error) {
		return noValue(writeAttr(attrPath(c.root, chip, "direction"), string(dir)))
	})
}

// GetDirection reads the current direction of an exported pin
func (c *Controller) GetDirection(pin int, cb DirectionCallback) *result.Future[Direction] {
	chip, err := c.ChipPin(pin)

	return run(result.Handler[Direction](cb), err, func() (Direction, error) {
		data, err := readAttr(attrPath(c.root, chip, "direction"))
		if err != nil {
			return "", err
		}
		return SanitizeDirection(data)
	})
}

func (c *Controller) autoExport(method string, pin int, chip int, direction Direction, mode ExportMode) error {
	switch mode {
	case ExportOff:
		return nil
	case ExportIfNeeded:
		if c.registry.Exported(pin) {
			return nil
		}
	}

	c.log.WithField("pin", pin).Debugf("Exporting pin as %s before %s", direction, method)
	return c.open(method, pin, chip, Options{Direction: direction, Pull: conngpio.Float})
}

// Read returns the value of pin, normally 0 or 1. Depending on mode the pin is
// first exported as input.
func (c *Controller) Read(pin int, cb ReadCallback, mode ExportMode) *result.Future[int] {
	chip, err := c.ChipPin(pin)

	return run(result.Handler[int](cb), err, func() (int, error) {
		if err := c.autoExport("read", pin, chip, In, mode); err != nil {
			return 0, err
		}

		data, err := readAttr(attrPath(c.root, chip, "value"))
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(strings.TrimSpace(data))
	})
}

// Write drives pin to level. Depending on mode the pin is first exported as output.
func (c *Controller) Write(pin int, level conngpio.Level, cb Callback, mode ExportMode) *result.Future[struct{}] {
	chip, err := c.ChipPin(pin)

	value := "0"
	if level {
		value = "1"
	}

	return run(cb.handler(), err, func() (struct{}, error) {
		if err := c.autoExport("write", pin, chip, Out, mode); err != nil {
			return noValue(err)
		}

		return noValue(writeAttr(attrPath(c.root, chip, "value"), value))
	})
}
