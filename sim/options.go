package sim

import (
	"time"

	"github.com/quizforge/quizgraph/sim/emit"
	"github.com/quizforge/quizgraph/sim/store"
)

// Option configures an Engine at construction time.
//
// Example:
//
//	engine, err := sim.New(
//	    sim.NewDefaultRegistry(),
//	    sim.WithEmitter(emit.NewLogEmitter(os.Stdout, false)),
//	    sim.WithMetrics(metrics),
//	)
type Option func(*engineConfig) error

// engineConfig collects options before they are applied to an Engine.
type engineConfig struct {
	emitter emit.Emitter
	metrics *PrometheusMetrics
	store   store.Store[ResolvedConfiguration]
	now     func() time.Time
}

// WithEmitter directs the engine's observability events to em. Default: all
// events are discarded.
func WithEmitter(em emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.emitter = em
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection. Default: no metrics.
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.metrics = metrics
		return nil
	}
}

// WithStore attaches a snapshot store, enabling SaveSnapshot, LoadSnapshot,
// and Replay. Default: no store; the snapshot methods return ErrNoStore.
func WithStore(st store.Store[ResolvedConfiguration]) Option {
	return func(cfg *engineConfig) error {
		cfg.store = st
		return nil
	}
}

// WithClock overrides the engine's notion of the current time, which feeds
// the current-season bound of implicit vintage ranges. Tests pin it so
// vintage merges stop depending on the wall clock. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(cfg *engineConfig) error {
		cfg.now = now
		return nil
	}
}
