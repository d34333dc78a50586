package params

import (
	"time"

	"golang.org/x/time/rate"
)

// Listener receives a watched key and its new value.
type Listener func(key, value string)

// Reader is the read side of a Store.
type Reader interface {
	Get(key string) string
}

// Watcher detects value changes of registered keys by polling the store.
// It never spawns goroutines: listeners run on whichever goroutine calls
// Check or Poll, which for the UI is the render loop.
type Watcher struct {
	store     Reader
	limiter   *rate.Limiter
	keys      []string
	last      map[string]string
	listeners []Listener

	dispatching bool
}

// NewWatcher polls at most once per interval. A non-positive interval
// disables throttling.
func NewWatcher(store Reader, interval time.Duration) *Watcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Watcher{
		store:   store,
		limiter: rate.NewLimiter(limit, 1),
		last:    make(map[string]string),
	}
}

// AddParam registers interest in key. The current value becomes the
// baseline, so registering does not itself produce a notification.
// Registering the same key again is a no-op.
func (w *Watcher) AddParam(key string) {
	if _, ok := w.last[key]; ok {
		return
	}
	w.keys = append(w.keys, key)
	w.last[key] = w.store.Get(key)
}

// Watched returns the registered keys in registration order.
func (w *Watcher) Watched() []string {
	out := make([]string, len(w.keys))
	copy(out, w.keys)
	return out
}

// Subscribe adds a listener.
func (w *Watcher) Subscribe(l Listener) {
	w.listeners = append(w.listeners, l)
}

type change struct {
	key, value string
}

// Check compares every watched key against its last seen value and
// notifies listeners of each difference. Changes are collected before any
// listener runs; a listener that writes to the store is seen on the next
// Check, and a Check issued from inside a listener returns immediately.
func (w *Watcher) Check() int {
	if w.dispatching {
		return 0
	}

	var changes []change
	for _, key := range w.keys {
		v := w.store.Get(key)
		if v == w.last[key] {
			continue
		}
		w.last[key] = v
		changes = append(changes, change{key: key, value: v})
	}

	w.dispatching = true
	defer func() { w.dispatching = false }()
	for _, c := range changes {
		for _, l := range w.listeners {
			l(c.key, c.value)
		}
	}
	return len(changes)
}

// Poll runs Check when the rate limit allows it. Intended to be called
// once per frame.
func (w *Watcher) Poll() int {
	if !w.limiter.Allow() {
		return 0
	}
	return w.Check()
}
