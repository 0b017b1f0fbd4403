// Package gpioadmin runs the privileged gpio-admin helper that exports and
// unexports GPIO lines in sysfs on behalf of unprivileged users.
package gpioadmin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// DefaultBinary is the helper looked up in PATH when Admin.Binary is empty
const DefaultBinary = "gpio-admin"

// ExitError is returned when the helper could not be started or exited with a non-zero status
type ExitError struct {
	Command string
	Chip    int
	// Diagnostic is the text the helper printed, stderr if available, otherwise stdout
	Diagnostic string
	Err        error
}

func (e *ExitError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("gpio-admin %s %d failed: %s", e.Command, e.Chip, e.Diagnostic)
	}
	return fmt.Sprintf("gpio-admin %s %d failed: %v", e.Command, e.Chip, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Admin invokes the helper binary. The zero value uses DefaultBinary and no logging.
type Admin struct {
	Binary string
	Logger *logrus.Entry
}

// PullToken returns the helper argument for a pull mode. Float and PullNoChange
// map to the empty token.
func PullToken(pull gpio.Pull) string {
	switch pull {
	case gpio.PullUp:
		return "pullup"
	case gpio.PullDown:
		return "pulldown"
	}
	return ""
}

func (a *Admin) binary() string {
	if a.Binary == "" {
		return DefaultBinary
	}
	return a.Binary
}

func (a *Admin) run(ctx context.Context, command string, chip int, args ...string) error {
	argv := append([]string{command, strconv.Itoa(chip)}, args...)
	cmd := exec.CommandContext(ctx, a.binary(), argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var log *logrus.Entry
	if a.Logger != nil {
		log = a.Logger.WithField("invocation", uuid.New().String())
		log.Debugf("Running %s %s", a.binary(), strings.Join(argv, " "))
	}

	err := cmd.Run()
	if err == nil {
		if log != nil {
			log.Debugf("Helper completed")
		}
		return nil
	}

	diag := strings.TrimSpace(stderr.String())
	if diag == "" {
		diag = strings.TrimSpace(stdout.String())
	}

	if log != nil {
		log.WithError(err).Debugf("Helper failed: %s", diag)
	}

	return &ExitError{
		Command:    command,
		Chip:       chip,
		Diagnostic: diag,
		Err:        err,
	}
}

// Export asks the helper to export a chip pin with the given pull mode
func (a *Admin) Export(ctx context.Context, chip int, pull gpio.Pull) error {
	if token := PullToken(pull); token != "" {
		return a.run(ctx, "export", chip, token)
	}
	return a.run(ctx, "export", chip)
}

// Unexport asks the helper to remove a chip pin from sysfs
func (a *Admin) Unexport(ctx context.Context, chip int) error {
	return a.run(ctx, "unexport", chip)
}
