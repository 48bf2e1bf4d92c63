// Package logger is a thin leveled wrapper over the standard logger.
package logger

import "log"

const (
	fatalLabel = "[FATAL] "
	errorLabel = "[ERROR] "
	warnLabel  = "[WARN ] "
	infoLabel  = "[INFO ] "
	debugLabel = "[DEBUG] "
)

var debugEnabled bool

// SetDebug toggles whether Debug output is emitted.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// leveled prepends the level string to log.Printf.
// Arguments are handled in the manner of [fmt.Printf].
func leveled(level string, format string, args ...interface{}) {
	log.Printf(level+format, args...)
}

// Fatal calls [log.Fatalf], adding a fatal label.
func Fatal(format string, args ...interface{}) {
	log.Fatalf(fatalLabel+format, args...)
}

// Error prints to the standard logger, adding an error label.
func Error(format string, args ...interface{}) {
	leveled(errorLabel, format, args...)
}

// Warn prints to the standard logger, adding a warn label.
func Warn(format string, args ...interface{}) {
	leveled(warnLabel, format, args...)
}

// Info prints to the standard logger, adding an info label.
func Info(format string, args ...interface{}) {
	leveled(infoLabel, format, args...)
}

// Debug prints to the standard logger, adding a debug label. Output is
// suppressed unless SetDebug(true) was called.
func Debug(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	leveled(debugLabel, format, args...)
}
