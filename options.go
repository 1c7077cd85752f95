package hnsw

import "log/slog"

// defaultM is the target maximum neighbors per node at layers >= 1;
// layer 0 allows 2*M.
const defaultM = 16

// defaultEfConstruction is the beam width used while building, absent an
// explicit WithEfConstruction.
const defaultEfConstruction = 200

// defaultSequentialPrelude is the number of initial inserts performed
// sequentially by InsertBatch before parallel workers are spawned.
const defaultSequentialPrelude = 500

type options struct {
	m                 int
	efConstruction    int
	seed              int64
	hasSeed           bool
	sequentialPrelude int
	logger            *Logger
	metrics           MetricsObserver
}

// Option configures Index construction.
type Option func(*options)

// WithM sets the target maximum neighbors per node at layers >= 1 (layer
// 0 allows 2*M). Defaults to 16.
func WithM(m int) Option {
	return func(o *options) {
		o.m = m
	}
}

// WithEfConstruction sets the beam width used while building the graph.
// Defaults to 200.
func WithEfConstruction(ef int) Option {
	return func(o *options) {
		o.efConstruction = ef
	}
}

// WithSeed fixes the random source used for level sampling, making
// single-threaded builds reproducible. Without it, each index seeds its
// own source from the current time.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithSequentialPrelude overrides the number of initial inserts
// InsertBatch performs sequentially, before spawning workers, to give
// the graph's upper layers a chance to form. Defaults to 500.
func WithSequentialPrelude(n int) Option {
	return func(o *options) {
		o.sequentialPrelude = n
	}
}

// WithLogger configures structured logging for insert and search. Pass
// nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger at the given level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsObserver configures an observer notified on insert and
// search completion. Pass nil to disable.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func defaultOptions() options {
	return options{
		m:                 defaultM,
		efConstruction:    defaultEfConstruction,
		sequentialPrelude: defaultSequentialPrelude,
		logger:            NoopLogger(),
		metrics:           NoopMetricsObserver{},
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	// WithLogger(nil) and WithMetricsObserver(nil) document "disable" as a
	// valid value; fall back to the no-op implementations here so every
	// other call site can invoke o.logger/o.metrics unconditionally.
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsObserver{}
	}
	return o
}
