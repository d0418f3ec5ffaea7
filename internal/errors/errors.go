// Package errors renders user-facing CLI failures and routes them
// through the logger before exiting.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitkit/internal/logger"
)

// Format renders err with the standard "Error: " prefix, or "" for nil.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf renders a formatted message with the standard "Error: " prefix.
func Formatf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal reports err on stderr and exits with status 1. A nil err is a
// no-op so command runners can call it unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	fail(err.Error())
}

// Fatalf reports a formatted message on stderr and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	fail(fmt.Sprintf(format, args...))
}

func fail(msg string) {
	logger.Error("Run failed", "error", msg)
	fmt.Fprintln(os.Stderr, "Error: "+msg)
	os.Exit(1)
}
