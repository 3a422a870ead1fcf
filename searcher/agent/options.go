package agent

import (
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(o *options)

type options struct {
	rng     *rand.Rand
	metrics bool
}

// WithRand makes the random agent draw from rng.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithMetrics makes search agents count nodes and prunes.
func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand()
	}
	return o
}

// NewRand returns a generator with a fresh random seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(frand.Uint64n(1 << 63)))
}
