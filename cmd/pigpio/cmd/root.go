package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	conngpio "periph.io/x/conn/v3/gpio"

	"github.com/BertoldVdb/go-pigpio/gpio"
	"github.com/BertoldVdb/go-pigpio/gpioadmin"
	"github.com/BertoldVdb/go-pigpio/logrusconfig"
	"github.com/BertoldVdb/go-pigpio/revision"
)

type options struct {
	sysfsRoot  string
	helper     string
	cpuinfo    string
	class      int
	exportMode string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "pigpio",
		Short: "Control Raspberry Pi header pins through sysfs",
		Long: `Export, configure, read and write Raspberry Pi GPIO pins using the
gpio-admin helper and the sysfs GPIO interface. Pins are physical header numbers.

Examples:
  pigpio open 11 in pullup      # Export pin 11 as input with pull-up
  pigpio read 11                # Print 0 or 1
  pigpio write 12 1             # Drive pin 12 high
  pigpio direction 12 out       # Change direction of pin 12
  pigpio close 11               # Unexport pin 11`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.sysfsRoot, "sysfs", gpio.DefaultSysfsRoot, "sysfs directory holding the gpio<N> entries")
	flags.StringVar(&opts.helper, "helper", gpioadmin.DefaultBinary, "privileged export helper")
	flags.StringVar(&opts.cpuinfo, "cpuinfo", revision.DefaultPath, "file holding the board Revision line")
	flags.IntVar(&opts.class, "board-class", 0, "force board revision class 1 or 2 instead of detecting it")
	flags.StringVar(&opts.exportMode, "export", "off", "export before read/write: needed, off or force")
	logrusconfig.InitParam(flags)

	rootCmd.AddCommand(
		newOpenCmd(opts),
		newCloseCmd(opts),
		newDirectionCmd(opts),
		newReadCmd(opts),
		newWriteCmd(opts),
		newPinsCmd(opts),
		newRevisionCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) controller() *gpio.Controller {
	log := logrusconfig.GetLogger(logrus.InfoLevel).WithField("prefix", "pigpio")

	config := gpio.DefaultConfig()
	config.SysfsRoot = o.sysfsRoot
	config.HelperBinary = o.helper
	config.CPUInfo = o.cpuinfo
	config.Class = revision.Class(o.class)
	config.Logger = log

	c, err := gpio.New(config)
	if err != nil {
		log.WithError(err).Fatal("Unable to determine board revision")
	}
	return c
}

func (o *options) mode() (gpio.ExportMode, error) {
	return gpio.ParseExportMode(o.exportMode)
}

func parsePin(arg string) (int, error) {
	pin, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", gpio.ErrorInvalidPin, arg)
	}
	return pin, nil
}

func parseLevel(arg string) (conngpio.Level, error) {
	switch strings.ToLower(arg) {
	case "high", "on":
		return conngpio.High, nil
	case "low", "off":
		return conngpio.Low, nil
	}

	v, err := strconv.ParseBool(arg)
	if err != nil {
		return conngpio.Low, fmt.Errorf("invalid level %q", arg)
	}
	return conngpio.Level(v), nil
}

func newOpenCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open <pin> [options...]",
		Short: "Export a pin (options: in, out, pullup, pulldown)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[0])
			if err != nil {
				return err
			}
			return o.controller().Open(pin, strings.Join(args[1:], " "), nil).Err(context.Background())
		},
	}
}

func newCloseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "close <pin>",
		Short: "Unexport a pin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[0])
			if err != nil {
				return err
			}
			return o.controller().Close(pin, nil).Err(context.Background())
		},
	}
}

func newDirectionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "direction <pin> [in|out]",
		Short: "Print or change the direction of an exported pin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[0])
			if err != nil {
				return err
			}

			c := o.controller()
			if len(args) == 2 {
				return c.SetDirection(pin, args[1], nil).Err(context.Background())
			}

			dir, err := c.GetDirection(pin, nil).Wait(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newReadCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read <pin>",
		Short: "Print the value of a pin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[0])
			if err != nil {
				return err
			}
			mode, err := o.mode()
			if err != nil {
				return err
			}

			value, err := o.controller().Read(pin, nil, mode).Wait(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newWriteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "write <pin> <0|1|high|low>",
		Short: "Drive a pin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[0])
			if err != nil {
				return err
			}
			level, err := parseLevel(args[1])
			if err != nil {
				return err
			}
			mode, err := o.mode()
			if err != nil {
				return err
			}

			return o.controller().Write(pin, level, nil, mode).Err(context.Background())
		},
	}
}

func newPinsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pins",
		Short: "List the usable header pins and their chip lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.controller()
			for _, pin := range c.Pins() {
				chip, err := c.ChipPin(pin)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  GPIO%d\n", pin, chip)
			}
			return nil
		},
	}
}

func newRevisionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "revision",
		Short: "Print the detected board revision class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), o.controller().Revision())
			return nil
		},
	}
}
