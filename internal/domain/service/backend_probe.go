package service

import (
	"context"
	"time"
)

// BackendProbe checks whether the quoting backend answers.
type BackendProbe interface {
	// Probe reports round-trip latency, or an error when the backend is unreachable or unhealthy.
	Probe(ctx context.Context) (time.Duration, error)
}
