package stencil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for contrast stretching.
var (
	// ErrNilImage is returned when a nil grid is passed.
	ErrNilImage = errors.New("stencil: image is nil")

	// ErrChannelMismatch is returned when the row width is not a multiple of
	// the channel count.
	ErrChannelMismatch = errors.New("stencil: row width is not a multiple of channels")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("stencil: invalid option supplied")
)

// Defaults.
const (
	DefaultSteps    = 1
	DefaultStepBy   = 1
	DefaultChannels = 3 // B, G, R
	DefaultWorkers  = 1
	DefaultThreads  = 1
)

// Option configures a Stretch run. Invalid values are recorded and surfaced
// as ErrOptionViolation when Stretch is invoked.
type Option func(*Options)

// Options holds the effective configuration of one run.
type Options struct {
	Steps    int   // step budget; 0 returns the input unchanged
	StepBy   uint8 // amount a pixel moves per step
	Channels int   // interleaved channels per pixel
	Workers  int   // partitions (one goroutine rank each)
	Threads  int   // row-strip goroutines inside one worker
	Logger   *slog.Logger
	OnStep   func(step, changes int) // called on the coordinator after each step

	err error
}

// DefaultOptions returns the documented defaults with a discarding logger.
func DefaultOptions() Options {
	return Options{
		Steps:    DefaultSteps,
		StepBy:   DefaultStepBy,
		Channels: DefaultChannels,
		Workers:  DefaultWorkers,
		Threads:  DefaultThreads,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnStep:   func(int, int) {},
	}
}

func violation(o *Options, format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithSteps sets the step budget (n >= 0).
func WithSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			violation(o, "steps cannot be negative (%d)", n)
			return
		}
		o.Steps = n
	}
}

// WithStepBy sets how far a pixel moves per step (b >= 1).
func WithStepBy(b int) Option {
	return func(o *Options) {
		if b < 1 || b > 255 {
			violation(o, "step must be in [1,255] (%d)", b)
			return
		}
		o.StepBy = uint8(b)
	}
}

// WithChannels sets the number of interleaved channels per pixel (c >= 1).
func WithChannels(c int) Option {
	return func(o *Options) {
		if c < 1 {
			violation(o, "channels must be >= 1 (%d)", c)
			return
		}
		o.Channels = c
	}
}

// WithWorkers sets the number of row partitions (n >= 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			violation(o, "workers must be >= 1 (%d)", n)
			return
		}
		o.Workers = n
	}
}

// WithThreads sets the row-strip parallelism inside each worker (n >= 1).
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 1 {
			violation(o, "threads must be >= 1 (%d)", n)
			return
		}
		o.Threads = n
	}
}

// WithLogger routes progress logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnStep registers a callback invoked on the coordinator after every step
// with the global number of changed cells.
func WithOnStep(fn func(step, changes int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// Result summarizes a run.
type Result struct {
	Steps     int   // steps executed
	Converged bool  // true when the last step changed nothing
	Changes   []int // global changed-cell count per executed step

	// Messages and Elements count the transfers of the whole run, scatter
	// and gather included.
	Messages, Elements int64
}
