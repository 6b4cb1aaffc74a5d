package probe

import "context"

// CheckResult is the outcome of a single reachability attempt against one
// host.
type CheckResult struct {
	Success   bool
	Host      string
	LatencyMS float64
	Message   string
}

// Checker performs a single reachability check against a host.
type Checker interface {
	Check(ctx context.Context, host string) CheckResult
}
