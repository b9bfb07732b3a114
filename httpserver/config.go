package httpserver

import (
	"net"
	"strconv"
	"time"
)

// Config holds the listener and request limits of the user API server.
type Config struct {
	// HideErrorDetails strips trace and details from error bodies. Codes,
	// messages and field errors are always returned.
	HideErrorDetails bool `yaml:"hide_error_details"`

	Host string `yaml:"host" validate:"required" default:"0.0.0.0"`
	Port int    `yaml:"port" validate:"required,min=1,max=65535" default:"8080"`

	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"required" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"required" default:"120s"`

	// RequestTimeout bounds a single request, including the command it
	// dispatches. Zero disables the timeout middleware.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0" default:"10s"`

	// BodyLimit is in bytes. User payloads are small, 1MB is plenty.
	BodyLimit int `yaml:"body_limit" validate:"required,min=1" default:"1048576"`
}

// Address returns the listen address; IPv6 hosts are bracketed.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
