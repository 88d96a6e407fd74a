package log

import (
	"os"

	"github.com/op/go-logging"
)

const moduleName = "daikon"

const (
	CRITICAL = logging.CRITICAL
	ERROR    = logging.ERROR
	WARNING  = logging.WARNING
	NOTICE   = logging.NOTICE
	INFO     = logging.INFO
	DEBUG    = logging.DEBUG
)

var logger = logging.MustGetLogger(moduleName)
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(logging.NewBackendFormatter(backend, format))
}

// SetLevel sets current global log level for the logger
func SetLevel(level logging.Level) {
	logging.SetLevel(level, moduleName)
}

// Critical logs a message using CRITICAL as log level.
func Critical(format string, args ...interface{}) {
	logger.Criticalf(format, args...)
}

// Errorf logs a message using ERROR as log level.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warningf logs a message using WARNING as log level.
func Warningf(format string, args ...interface{}) {
	logger.Warningf(format, args...)
}

// Noticef logs a message using NOTICE as log level.
func Noticef(format string, args ...interface{}) {
	logger.Noticef(format, args...)
}

// Infof logs a message using INFO as log level.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debugf logs a message using DEBUG as log level.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
