package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Level comes from LOG_LEVEL (default
// info).
var Log = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	return logger
}
