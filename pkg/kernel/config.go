package kernel

import "time"

// Default tuning values for the pieces of the pipeline that need one:
// vertex-welding tolerance, sheet-metal neutral-axis factor, snapshot
// coalescing window, and the embedded-frame request timeout.
const (
	DefaultEpsilon          = 1e-6
	DefaultKFactor          = 0.5
	DefaultSnapshotDebounce = 200 * time.Millisecond
	DefaultBridgeTimeout    = 20 * time.Second
)

// Config bundles the tuning values shared across the kernel packages.
// Nothing in pkg/brep, pkg/feature, or pkg/bridge requires a Config to
// operate (each has its own hardcoded default matching the fields below).
// cmd/cadhost builds one with the defaults and passes its BridgeTimeout to
// the bridge client.
type Config struct {
	Epsilon          float64
	KFactor          float64
	SnapshotDebounce time.Duration
	BridgeTimeout    time.Duration
}

// Option configures a Config before use.
type Option func(*Config)

// WithEpsilon overrides the vertex-welding tolerance.
func WithEpsilon(eps float64) Option {
	return func(c *Config) { c.Epsilon = eps }
}

// WithKFactor overrides the default sheet-metal neutral-axis factor.
func WithKFactor(k float64) Option {
	return func(c *Config) { c.KFactor = k }
}

// WithSnapshotDebounce overrides the history engine's snapshot coalescing
// window.
func WithSnapshotDebounce(d time.Duration) Option {
	return func(c *Config) { c.SnapshotDebounce = d }
}

// WithBridgeTimeout overrides the embedded-frame request timeout.
func WithBridgeTimeout(d time.Duration) Option {
	return func(c *Config) { c.BridgeTimeout = d }
}

// NewConfig builds a Config with the package defaults above, then applies
// opts left-to-right.
func NewConfig(opts ...Option) Config {
	c := Config{
		Epsilon:          DefaultEpsilon,
		KFactor:          DefaultKFactor,
		SnapshotDebounce: DefaultSnapshotDebounce,
		BridgeTimeout:    DefaultBridgeTimeout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
