package probe

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/multierr"
)

// DefaultHosts is the default probe pool: public anycast resolvers unlikely
// to be down at the same time.
var DefaultHosts = []string{"1.1.1.1", "8.8.8.8", "9.9.9.9"}

// Reachability decides whether the network is reachable at all. Each attempt
// probes one host from the pool, chosen uniformly at random so a single
// host's own outage cannot produce a false negative. Up to Attempts fresh
// probes are made; the first success wins.
type Reachability struct {
	Checker  Checker
	Hosts    []string
	Attempts int

	// pick overrides host selection in tests.
	pick func(n int) int
}

// Reachable reports whether any probe attempt succeeded. When it returns
// false, the error aggregates the per-attempt failures for diagnostics;
// exhausting all attempts is the normal "currently down" condition, not a
// software fault.
func (r *Reachability) Reachable(ctx context.Context) (bool, error) {
	if len(r.Hosts) == 0 {
		return false, errors.New("probe: empty host pool")
	}
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	pick := r.pick
	if pick == nil {
		pick = rand.IntN
	}

	var errs error
	for i := 0; i < attempts; i++ {
		host := r.Hosts[pick(len(r.Hosts))]
		out := r.Checker.Check(ctx, host)
		if out.Success {
			return true, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %s", host, out.Message))
	}
	return false, errs
}
