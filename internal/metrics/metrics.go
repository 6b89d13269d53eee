package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// HTTP holds the process-wide request counters surfaced on /health.
type HTTP struct {
	Requests     Counter
	ClientErrors Counter
	ServerErrors Counter
}

var Default = &HTTP{}

func (h *HTTP) Observe(status int) {
	h.Requests.Inc()
	switch {
	case status >= 500:
		h.ServerErrors.Inc()
	case status >= 400:
		h.ClientErrors.Inc()
	}
}

func (h *HTTP) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests":      h.Requests.Load(),
		"client_errors": h.ClientErrors.Load(),
		"server_errors": h.ServerErrors.Load(),
	}
}
