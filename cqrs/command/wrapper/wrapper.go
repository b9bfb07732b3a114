// Package wrapper provides middlewares for the command bus: logging, validation,
// panic recovery, timeouts, tracing, metadata injection and metrics.
package wrapper
