package logrusconfig

import (
	"testing"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func TestLevelFlag(t *testing.T) {
	loglevel = nil
	if GetLogger(logrus.WarnLevel).Logger.GetLevel() != logrus.WarnLevel {
		t.Error("Default level not used without flag")
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitParam(flags)
	if err := flags.Parse([]string{"--loglevel", "5"}); err != nil {
		t.Fatal(err)
	}

	if GetLogger(logrus.WarnLevel).Logger.GetLevel() != logrus.DebugLevel {
		t.Error("Flag value was not applied")
	}

	loglevel = nil
}

func TestFormatter(t *testing.T) {
	formatter, ok := GetLogger(logrus.InfoLevel).Logger.Formatter.(*prefixed.TextFormatter)
	if !ok {
		t.Fatal("Logger does not use the prefixed formatter")
	}
	if !formatter.FullTimestamp || formatter.SpacePadding != 50 {
		t.Error("Unexpected formatter settings", formatter)
	}
}
