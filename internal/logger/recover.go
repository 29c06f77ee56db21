package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// exit is swapped in tests.
var exit = os.Exit

// HandlePanic is a deferred function that recovers from panics, logs them
// with the stack, prints a short notice and exits with status 1. Form
// contents are never included.
// Usage: defer logger.HandlePanic(log, os.Stderr, "form")
func HandlePanic(l *Logger, w io.Writer, command string) {
	r := recover()
	if r == nil {
		return
	}
	report(l, w, command, r)
}

// HandlePanicFunc is HandlePanic for loggers that depend on state set up after
// the defer, such as flags parsed by cobra. newLogger runs only on a panic.
// Usage: defer logger.HandlePanicFunc(func() *logger.Logger { ... }, os.Stderr, "cli")
func HandlePanicFunc(newLogger func() *Logger, w io.Writer, command string) {
	r := recover()
	if r == nil {
		return
	}
	var l *Logger
	if newLogger != nil {
		l = newLogger()
	}
	report(l, w, command, r)
}

func report(l *Logger, w io.Writer, command string, r any) {
	if l != nil {
		l.Error("panic", "command", command, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		l.Sync()
	}
	fmt.Fprintf(w, "\npromptfy %s crashed: %v\n", command, r)
	fmt.Fprintf(w, "Please report this issue at https://github.com/josephgoksu/promptfy/issues\n")
	exit(1)
}
