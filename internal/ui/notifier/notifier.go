// Package notifier fans out reload pings to connected browser sessions.
package notifier

import (
	"context"
	"sync"
)

// Notifier broadcasts reload signals to all subscribed listeners.
// A listener receives an empty struct when watched assets changed and
// the page should be reloaded.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives reload pings.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Subscribers reports how many listeners are attached.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast sends a ping to all listeners.
// Non-blocking: a listener with a pending ping is skipped, one ping is enough.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Wait subscribes, blocks until the next ping or ctx is done, and unsubscribes.
// It reports whether a ping arrived.
func (n *Notifier) Wait(ctx context.Context) bool {
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	select {
	case <-ch:
		return true
	case <-ctx.Done():
		return false
	}
}
