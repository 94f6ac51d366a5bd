package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging() *logrus.Logger {
	formatter := &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}

	logger := logrus.Logger{
		Formatter: formatter,
		Out:       os.Stdout,
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.InfoLevel,
	}

	// Package-level logrus calls share the same output shape.
	logrus.SetFormatter(formatter)
	logrus.SetOutput(os.Stdout)

	return &logger
}

// SetLevel applies a level name such as "debug" to logger and the standard logger.
func SetLevel(logger *logrus.Logger, name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logrus.SetLevel(level)
	return nil
}
