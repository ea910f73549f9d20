package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogOption configures the logger used by library components.
type LogOption struct {
	LogLevel logrus.Level
	Logger   *logrus.Logger // takes precedence over LogLevel if specified
}

// NewLogger returns a logger for the optional LogOption. Without any option,
// logs are discarded.
func NewLogger(opt ...LogOption) *logrus.Logger {
	logger := logrus.New()
	if len(opt) == 0 {
		logger.Out = io.Discard
		return logger
	}
	if opt[0].Logger != nil {
		return opt[0].Logger
	}
	logger.SetLevel(opt[0].LogLevel)
	return logger
}

// NewTextFormatter returns the text formatter used by command line tools.
func NewTextFormatter(colorDisabled bool) *logrus.TextFormatter {
	formatter := logrus.TextFormatter{
		FullTimestamp: true,
	}

	if colorDisabled {
		formatter.DisableColors = true
	} else {
		formatter.ForceColors = true
	}

	return &formatter
}
