// Package instrumentation delivers per-request events from the transport to
// registered listeners.
//
// A Bus is created by the caller and handed to the transport, so every client
// instance (and every test) owns its registry:
//
//	bus := instrumentation.NewBus()
//	name := bus.Subscribe(func(e instrumentation.Event) {
//		fmt.Println(e.Method, e.URL, e.HTTPStatus, e.DurationMS)
//	})
//	defer bus.Unsubscribe(name)
package instrumentation

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/s0up4200/likee/config"
)

// Event describes one finished transport call.
type Event struct {
	Duration time.Duration
	// HTTPStatus is 0 when no status line was received.
	HTTPStatus int
	Method     string
	URL        string
	Config     config.ClientConfig
	Err        error
}

// DurationMS is the call duration in whole milliseconds.
func (e Event) DurationMS() int64 {
	return e.Duration.Milliseconds()
}

// HasStatus reports whether the server answered with a status line.
func (e Event) HasStatus() bool {
	return e.HTTPStatus != 0
}

// Listener receives events synchronously on the caller's goroutine.
type Listener func(Event)

type subscription struct {
	name     string
	listener Listener
}

// Bus is an ordered registry of named listeners.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers l under a generated name and returns that name.
func (b *Bus) Subscribe(l Listener) string {
	return b.SubscribeNamed(uuid.NewString(), l)
}

// SubscribeNamed registers l under name. An existing listener with the same
// name is replaced and keeps its position.
func (b *Bus) SubscribeNamed(name string, l Listener) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(name); i >= 0 {
		b.subs[i].listener = l
		return name
	}
	b.subs = append(b.subs, subscription{name: name, listener: l})
	return name
}

// Unsubscribe removes the listener registered under name, if any.
func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(name); i >= 0 {
		b.subs = slices.Delete(b.subs, i, i+1)
	}
}

// Notify calls every listener in registration order. A panicking listener
// is not recovered and stops delivery to the listeners after it.
func (b *Bus) Notify(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.listener(e)
	}
}

// Clear removes every listener.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Names returns the registered names in delivery order.
func (b *Bus) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, len(b.subs))
	for i, s := range b.subs {
		names[i] = s.name
	}
	return names
}

func (b *Bus) index(name string) int {
	return slices.IndexFunc(b.subs, func(s subscription) bool { return s.name == name })
}
