// AngelaMos | 2026
// redirector.go

package navigation

import (
	"sync"
	"time"
)

// Redirector schedules auto-redirects. Requests inside the delay window
// replace each other, and nothing is scheduled while a fired redirect is
// still being carried out. The mutex only guards the timer and flag; the
// navigate callback runs without it.
type Redirector struct {
	mu       sync.Mutex
	delay    time.Duration
	navigate func(Route)
	timer    *time.Timer
	gen      uint64
	inFlight bool
}

func NewRedirector(delay time.Duration, navigate func(Route)) *Redirector {
	return &Redirector{delay: delay, navigate: navigate}
}

// Observe is called on every navigation event. It reports whether a
// redirect was scheduled.
func (r *Redirector) Observe(currentPath string, canonical Route, g Guards) bool {
	redirect := ShouldAutoRedirect(currentPath, canonical, g)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	if !redirect || r.inFlight {
		return false
	}

	gen := r.gen
	r.timer = time.AfterFunc(r.delay, func() { r.fire(gen, canonical) })
	return true
}

func (r *Redirector) fire(gen uint64, route Route) {
	r.mu.Lock()
	if gen != r.gen || r.timer == nil || r.inFlight {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.inFlight = true
	r.mu.Unlock()

	r.navigate(route)
}

// Done marks the in-flight transition as finished.
func (r *Redirector) Done() {
	r.mu.Lock()
	r.inFlight = false
	r.mu.Unlock()
}

func (r *Redirector) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// stopLocked drops any pending timer. A timer that already fired and is
// waiting on the mutex sees the bumped generation and does nothing.
func (r *Redirector) stopLocked() {
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Redirector) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

func (r *Redirector) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight
}
