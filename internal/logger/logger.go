// Package logger provides the zerolog logger used by babyctl.
package logger

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// configureErrors makes .Stack() on error events render a pkg/errors
// stack trace, attaching one to plain errors first.
func configureErrors() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
}

// New returns a JSON logger writing to w at level, tagged with component.
func New(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	configureErrors()
	return zerolog.New(w).Level(level).With().
		Str("component", component).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger on w (os.Stderr when nil),
// for interactive use.
func NewConsole(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}, component, level)
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// yield info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
