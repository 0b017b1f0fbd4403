package logrusconfig

import (
	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var loglevel *int

// InitParam registers the loglevel flag. Loggers created after parsing use its value.
func InitParam(flags *pflag.FlagSet) {
	loglevel = flags.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
}

// Level returns the level selected on the command line, or def when the flag was not registered
func Level(def logrus.Level) logrus.Level {
	if loglevel == nil {
		return def
	}
	return logrus.Level(*loglevel)
}

func GetLogger(level logrus.Level) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	logger.SetLevel(Level(level))
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.SpacePadding = 50
	logger.SetFormatter(customFormatter)
	return logrus.NewEntry(logger)
}
