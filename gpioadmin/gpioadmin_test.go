package gpioadmin

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

/* The fake helper appends its arguments to a log file and fails for chip 99 */
const fakeHelper = `#!/bin/sh
echo "$@" >> "$(dirname "$0")/calls"
if [ "$2" = "99" ]; then
	echo "gpio-admin: cannot export GPIO $2: device or resource busy" >&2
	exit 1
fi
exit 0
`

func setupHelper(t *testing.T) (string, *Admin) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("No shell available")
	}

	dir, err := ioutil.TempDir(os.TempDir(), "test-")
	if err != nil {
		t.Fatal(err)
	}

	binary := filepath.Join(dir, "gpio-admin")
	if err := ioutil.WriteFile(binary, []byte(fakeHelper), 0700); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(ioutil.Discard)

	return dir, &Admin{Binary: binary, Logger: logrus.NewEntry(logger)}
}

func readCalls(t *testing.T, dir string) []string {
	data, err := ioutil.ReadFile(filepath.Join(dir, "calls"))
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestExportUnexport(t *testing.T) {
	dir, admin := setupHelper(t)
	defer os.RemoveAll(dir)

	ctx := context.Background()
	if err := admin.Export(ctx, 17, gpio.Float); err != nil {
		t.Error("Export failed", err)
	}
	if err := admin.Export(ctx, 18, gpio.PullUp); err != nil {
		t.Error("Export failed", err)
	}
	if err := admin.Export(ctx, 22, gpio.PullDown); err != nil {
		t.Error("Export failed", err)
	}
	if err := admin.Unexport(ctx, 17); err != nil {
		t.Error("Unexport failed", err)
	}

	expected := []string{
		"export 17",
		"export 18 pullup",
		"export 22 pulldown",
		"unexport 17",
	}
	calls := readCalls(t, dir)
	if len(calls) != len(expected) {
		t.Fatal("Unexpected calls", calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Error("Call", i, "was", calls[i], "expected", expected[i])
		}
	}
}

func TestExportFailure(t *testing.T) {
	dir, admin := setupHelper(t)
	defer os.RemoveAll(dir)

	err := admin.Export(context.Background(), 99, gpio.Float)
	if err == nil {
		t.Fatal("Export of busy pin succeeded")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("Error is not an ExitError", err)
	}
	if exitErr.Command != "export" || exitErr.Chip != 99 {
		t.Error("Unexpected error fields", exitErr)
	}
	if !strings.Contains(exitErr.Diagnostic, "device or resource busy") {
		t.Error("Diagnostic output not captured:", exitErr.Diagnostic)
	}

	var processErr *exec.ExitError
	if !errors.As(err, &processErr) {
		t.Error("Underlying exit status not wrapped", err)
	}
}

func TestMissingBinary(t *testing.T) {
	admin := &Admin{Binary: "/nonexistent/gpio-admin"}

	err := admin.Unexport(context.Background(), 4)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("Expected ExitError, got", err)
	}
	if exitErr.Diagnostic != "" || exitErr.Err == nil {
		t.Error("Unexpected error fields", exitErr)
	}
}

func TestPullToken(t *testing.T) {
	if PullToken(gpio.Float) != "" || PullToken(gpio.PullNoChange) != "" {
		t.Error("Float should not produce a token")
	}
	if PullToken(gpio.PullUp) != "pullup" || PullToken(gpio.PullDown) != "pulldown" {
		t.Error("Unexpected pull tokens")
	}
}
