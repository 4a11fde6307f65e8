// internal/workflow/timer.go
package workflow

import (
	"sync"
	"time"
)

// RedirectTicks is the countdown length of the return-to-list timer.
const RedirectTicks = 3

// RedirectTimer is a cancellable countdown. Start begins a fresh countdown
// from RedirectTicks, replacing any running one; Stop cancels outright so no
// tick fires after the workflow has left the success state.
type RedirectTimer struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

func NewRedirectTimer(interval time.Duration) *RedirectTimer {
	return &RedirectTimer{interval: interval}
}

// Start runs the countdown in the background. onTick receives the remaining
// count after each intermediate tick; onExpire fires exactly once when the
// countdown reaches zero.
func (t *RedirectTimer) Start(onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		remaining := RedirectTicks
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				remaining--
				if remaining <= 0 {
					// Detach before firing so a Stop from inside the
					// callback is a no-op rather than a double close.
					t.clear(stop)
					onExpire()
					return
				}
				onTick(remaining)
			}
		}
	}()
}

// Stop cancels the running countdown, if any.
func (t *RedirectTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *RedirectTimer) clear(stop chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == stop {
		t.stop = nil
	}
}
