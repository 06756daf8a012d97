package zebin

import (
	"go.uber.org/zap"

	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/zeinfo"
)

// Options configures a decode call.
type Options struct {
	Config zeinfo.Config
	// Target, when set, is checked against the IntelGT notes.
	Target *container.Target
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Config: zeinfo.DefaultConfig()}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = Logger()
	}
	return o
}

// WithTolerateUnknown controls whether unknown zeinfo keys only warn.
func WithTolerateUnknown(v bool) Option {
	return func(o *Options) { o.Config.TolerateUnknown = v }
}

// WithMinScratchSpaceSize floors every scratch slot.
func WithMinScratchSpaceSize(n uint32) Option {
	return func(o *Options) { o.Config.MinScratchSpaceSize = n }
}

// WithGRFSize sets the register size used for per-thread payload padding.
func WithGRFSize(n uint32) Option {
	return func(o *Options) { o.Config.GRFSize = n }
}

// WithAppendElws reserves the enqueued local size after cross-thread data.
func WithAppendElws(v bool) Option {
	return func(o *Options) { o.Config.AppendElws = v }
}

// WithTarget validates container notes against t.
func WithTarget(t container.Target) Option {
	return func(o *Options) { o.Target = &t }
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
