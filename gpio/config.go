package gpio

import (
	"context"

	"github.com/sirupsen/logrus"
	conngpio "periph.io/x/conn/v3/gpio"

	"github.com/BertoldVdb/go-pigpio/gpioadmin"
	"github.com/BertoldVdb/go-pigpio/revision"
)

// Helper exports and unexports chip pins. *gpioadmin.Admin is the production implementation.
type Helper interface {
	Export(ctx context.Context, chip int, pull conngpio.Pull) error
	Unexport(ctx context.Context, chip int) error
}

// Config is the parameter struct for New
type Config struct {
	// SysfsRoot holds the gpio<N> directories
	SysfsRoot string
	// HelperBinary is used to build a gpioadmin.Admin when Helper is nil
	HelperBinary string
	Helper       Helper

	// CPUInfo is the system information file used to detect the board revision.
	// It is ignored when Class is set.
	CPUInfo string
	Class   revision.Class

	// Registry may be shared between controllers, a new one is created if nil
	Registry *Registry
	Logger   *logrus.Entry
}

// DefaultConfig returns the configuration for a Raspberry Pi with gpio-admin installed
func DefaultConfig() Config {
	return Config{
		SysfsRoot:    DefaultSysfsRoot,
		HelperBinary: gpioadmin.DefaultBinary,
		CPUInfo:      revision.DefaultPath,
	}
}
