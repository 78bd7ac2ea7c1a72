package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InfoLogger menulis ke stdout, ErrorLogger ke stderr, supaya log
// operasional dan log error bisa dipisah di level proses.
var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

func InitLogger() {
	infoLevel := logrus.InfoLevel
	// LOG_LEVEL=debug menaikkan verbosity tanpa rebuild
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		infoLevel = lvl
	}

	InfoLogger = newLogger(os.Stdout, infoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
}
