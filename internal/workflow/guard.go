// internal/workflow/guard.go
package workflow

// busyGuard is a single-permit lock shared by the interpretation and publish
// calls. TryAcquire never blocks; a second submission is rejected while the
// first is still in flight.
type busyGuard chan struct{}

func newBusyGuard() busyGuard {
	return make(busyGuard, 1)
}

func (g busyGuard) TryAcquire() bool {
	select {
	case g <- struct{}{}:
		return true
	default:
		return false
	}
}

func (g busyGuard) Release() {
	select {
	case <-g:
	default:
	}
}

func (g busyGuard) Held() bool {
	return len(g) == 1
}
