package opts

import (
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// TraceVerbosity is the -v count at which the copy tool's own output is shown
const TraceVerbosity = 2

// RootOpts contains the options parsed from the command line
type RootOpts struct {
	DryRun  bool
	Verbose int
	Drives  bool
	Timeout time.Duration
	Tool    string
}

// Level maps the -v count to a zerolog level: info, then debug, then trace
func (o *RootOpts) Level() zerolog.Level {
	switch {
	case o.Verbose <= 0:
		return zerolog.InfoLevel
	case o.Verbose == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// PassThrough reports whether the copy tool's output should reach the console
func (o *RootOpts) PassThrough() bool {
	return o.Verbose >= TraceVerbosity
}

// Validate checks option values that cobra cannot
func (o *RootOpts) Validate() error {
	if o.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	if o.Tool == "" {
		return errors.New("tool must not be empty")
	}
	return nil
}
