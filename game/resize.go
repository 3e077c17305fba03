package game

import (
	"time"

	"golang.org/x/time/rate"
)

// resizeCoalescer collapses bursts of window resize events. At most one
// resize is applied per interval and it always carries the latest size.
type resizeCoalescer struct {
	limiter *rate.Limiter
	pending bool
	w, h    int
}

func newResizeCoalescer(interval time.Duration) *resizeCoalescer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &resizeCoalescer{limiter: rate.NewLimiter(limit, 1)}
}

// Observe records the latest window size.
func (r *resizeCoalescer) Observe(w, h int) {
	r.pending = true
	r.w, r.h = w, h
}

// Take returns the pending size if the interval allows applying it now.
func (r *resizeCoalescer) Take(now time.Time) (w, h int, ok bool) {
	if !r.pending || !r.limiter.AllowN(now, 1) {
		return 0, 0, false
	}
	r.pending = false
	return r.w, r.h, true
}
