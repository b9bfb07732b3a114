// Package middleware provides HTTP server middleware components.
//
// Priorities: recovery 1000, tracing 900, timeout 800, meta 700, logger 500, error handler 400.
package middleware

import (
	"runtime"

	"github.com/code19m/errx"
)

const stackTraceSize = 4096

func stackTrace() string {
	buf := make([]byte, stackTraceSize)
	return string(buf[:runtime.Stack(buf, false)])
}

func panicError(msg string, r any) error {
	return errx.New(msg, errx.WithDetails(errx.D{
		"stack_trace":   stackTrace(),
		"panic_message": r,
	}))
}
