package service

import (
	"time"

	"github.com/ansys/pypim/helpers"
	"github.com/ansys/pypim/interfaces"

	"github.com/go-kit/log"
	"google.golang.org/grpc"
)

// Readiness polling defaults, used when WaitForReady receives zero values.
const (
	DefaultReadyTimeout = 10 * time.Minute
	DefaultPollInterval = 500 * time.Millisecond
)

// Option configures a Client and the Instances it creates.
type Option func(*options)

type options struct {
	logger           log.Logger
	clock            interfaces.TimeProvider
	metrics          *Metrics
	dialOptions      []grpc.DialOption
	headerProcessors []interfaces.HeaderProcessor
	requestTimeout   time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		logger: log.NewNopLogger(),
		clock:  NewTimeProvider(time.Now, time.Sleep),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	return o
}

// WithLogger sets the go-kit logger. Panics on nil.
func WithLogger(logger log.Logger) Option {
	helpers.NilPanic(logger, "service.options.go: logger is required")
	return func(o *options) { o.logger = logger }
}

// WithTimeProvider replaces the clock used for readiness polling. Panics on nil.
func WithTimeProvider(clock interfaces.TimeProvider) Option {
	helpers.NilPanic(clock, "service.options.go: clock is required")
	return func(o *options) { o.clock = clock }
}

// WithMetrics sets the collectors updated by the client. Panics on nil.
func WithMetrics(m *Metrics) Option {
	helpers.NilPanic(m, "service.options.go: metrics is required")
	return func(o *options) { o.metrics = m }
}

// WithDialOptions adds options to the dial of the PIM connection, after the defaults.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOptions = append(o.dialOptions, opts...) }
}

// WithHeaderProcessors runs extra processors on the PIM connection metadata after the configured headers.
func WithHeaderProcessors(processors ...interfaces.HeaderProcessor) Option {
	return func(o *options) { o.headerProcessors = append(o.headerProcessors, processors...) }
}

// WithRequestTimeout bounds every RPC to the PIM service, including each readiness poll. Zero disables it.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}
