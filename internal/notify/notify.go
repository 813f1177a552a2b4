// Package notify implements the save-indicator channel: a single-slot
// current-value broadcast that clears itself after a fixed delay. It is
// fire-and-forget UI signaling, not an event log; writes landing inside the
// delay window collapse to "most recent wins".
package notify

import (
	"sync"
	"time"
)

// Kind identifies which collection a SaveEvent refers to.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindSettings     Kind = "settings"
)

// DefaultTTL is how long a published event stays visible before the slot
// auto-clears.
const DefaultTTL = 3 * time.Second

// SaveEvent is the transient signal emitted once per successful write.
type SaveEvent struct {
	Kind      Kind
	Timestamp time.Time
	Message   string
}

var messages = map[Kind]string{
	KindTransactions: "Transações salvas automaticamente",
	KindSettings:     "Configurações salvas automaticamente",
}

// Notifier holds at most one pending SaveEvent. Publishing replaces the
// pending event and re-arms the auto-clear timer.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *SaveEvent
	subs    map[uint64]chan *SaveEvent
	nextSub uint64
	now     func() time.Time
}

// New creates a Notifier with the given auto-clear delay; ttl <= 0 selects
// DefaultTTL.
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl:  ttl,
		subs: make(map[uint64]chan *SaveEvent),
		now:  time.Now,
	}
}

// Publish replaces the pending event and schedules the clear. The timer is
// armed for this event only: when a newer publish lands before the delay
// elapses, the stale timer must leave the slot alone, so each timer carries
// the sequence number it was armed for and checks it before clearing.
func (n *Notifier) Publish(kind Kind) {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	ev := &SaveEvent{Kind: kind, Timestamp: n.now(), Message: messages[kind]}
	n.current = ev
	n.broadcastLocked(ev)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq != seq {
			return
		}
		n.current = nil
		n.broadcastLocked(nil)
	})
}

// Latest samples the pending event, or nil once the slot has cleared.
func (n *Notifier) Latest() *SaveEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Subscribe returns a channel that carries the latest slot value (nil for a
// clear) and a cancel function. The channel holds one value; an unread
// stale value is replaced rather than queued.
func (n *Notifier) Subscribe() (<-chan *SaveEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextSub++
	id := n.nextSub
	ch := make(chan *SaveEvent, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
	return ch, cancel
}

func (n *Notifier) broadcastLocked(ev *SaveEvent) {
	for _, ch := range n.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
