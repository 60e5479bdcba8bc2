package donation

import (
	"sync"
	"time"
)

// Notice holds one user-visible error message. Each message clears itself after
// the TTL unless a newer message replaced it first.
type Notice struct {
	ttl time.Duration

	mu      sync.Mutex
	message string
	seq     uint64
	timer   *time.Timer
}

func NewNotice(ttl time.Duration) *Notice {
	return &Notice{ttl: ttl}
}

func (n *Notice) Set(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	seq := n.seq
	n.message = message
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq == seq {
			n.message = ""
		}
	})
}

func (n *Notice) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

func (n *Notice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.message = ""
}

// Stop cancels the pending clear timer.
func (n *Notice) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
