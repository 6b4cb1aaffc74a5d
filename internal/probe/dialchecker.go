package probe

import (
	"context"
	"net"
	"time"
)

// DialChecker checks reachability by opening a TCP connection to the host.
// Hosts without an explicit port get port 53; the probe pool consists of
// public DNS resolvers, which answer on 53 over TCP.
type DialChecker struct {
	Timeout time.Duration
}

func NewDialChecker(timeout time.Duration) *DialChecker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &DialChecker{Timeout: timeout}
}

func (c *DialChecker) Check(ctx context.Context, host string) CheckResult {
	address := host
	if _, _, err := net.SplitHostPort(host); err != nil {
		address = net.JoinHostPort(host, "53")
	}

	d := net.Dialer{Timeout: c.Timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", address)
	lat := time.Since(start).Seconds() * 1000
	if err != nil {
		return CheckResult{Success: false, Host: host, LatencyMS: lat, Message: err.Error()}
	}
	_ = conn.Close()
	return CheckResult{Success: true, Host: host, LatencyMS: lat, Message: "tcp_connect"}
}
