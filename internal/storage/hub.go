// Package storage provides browser-style local storage on top of a durable
// repository: several contexts share one backend, and a write made through
// one context is pushed to the observers of every other context.
package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dastanaron/tilawah/internal/repository"
)

// Change describes a write observed by other contexts.
// Removed is set when the key was deleted; NewValue is empty then.
// Seq increases with every committed write of Key; a Change with a lower Seq
// than one already seen is stale.
type Change struct {
	Key      string
	NewValue string
	Removed  bool
	Seq      uint64
	Source   uuid.UUID
	At       time.Time
}

// keyState orders the writes of one key
type keyState struct {
	mu  sync.Mutex
	seq uint64
}

// Hub owns the backend and fans out changes between contexts
type Hub struct {
	repo repository.Repository
	log  logrus.FieldLogger

	mu       sync.RWMutex
	contexts map[uuid.UUID]*Local

	keysMu sync.Mutex
	keys   map[string]*keyState
}

// NewHub creates a hub over repo
func NewHub(repo repository.Repository, log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		repo:     repo,
		log:      log,
		contexts: make(map[uuid.UUID]*Local),
		keys:     make(map[string]*keyState),
	}
}

func (h *Hub) key(key string) *keyState {
	h.keysMu.Lock()
	defer h.keysMu.Unlock()
	ks, ok := h.keys[key]
	if !ok {
		ks = &keyState{}
		h.keys[key] = ks
	}
	return ks
}

// seq returns the sequence number of the last committed write of key
func (h *Hub) seq(key string) uint64 {
	ks := h.key(key)
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return ks.seq
}

// commit runs write while holding the lock of key and numbers it on success.
// Writes of one key reach the repository in sequence order.
func (h *Hub) commit(key string, write func() error) (uint64, error) {
	ks := h.key(key)
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if err := write(); err != nil {
		return 0, err
	}
	ks.seq++
	return ks.seq, nil
}

// Open creates a new context (the equivalent of one open window)
func (h *Hub) Open() *Local {
	l := &Local{
		id:        uuid.New(),
		hub:       h,
		listeners: make(map[int]func(Change)),
	}
	h.mu.Lock()
	h.contexts[l.id] = l
	h.mu.Unlock()
	h.log.WithField("context", l.id).Debug("storage context opened")
	return l
}

// Contexts returns the number of open contexts
func (h *Hub) Contexts() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.contexts)
}

func (h *Hub) detach(id uuid.UUID) {
	h.mu.Lock()
	delete(h.contexts, id)
	h.mu.Unlock()
}

// publish delivers c to every context except the one that made the write.
// Delivery is synchronous and happens without holding any hub lock, so
// concurrent writes may arrive out of order; receivers compare Seq.
func (h *Hub) publish(c Change) {
	h.mu.RLock()
	targets := make([]*Local, 0, len(h.contexts))
	for id, l := range h.contexts {
		if id != c.Source {
			targets = append(targets, l)
		}
	}
	h.mu.RUnlock()

	for _, l := range targets {
		l.deliver(c)
	}
}

// Local is one storage context. Its own writes are not echoed back to it.
type Local struct {
	id  uuid.UUID
	hub *Hub

	mu        sync.Mutex
	listeners map[int]func(Change)
	nextID    int
	closed    bool
}

// ID returns the context identity carried in Change.Source
func (l *Local) ID() uuid.UUID {
	return l.id
}

// Logger returns the hub logger annotated with this context
func (l *Local) Logger() logrus.FieldLogger {
	return l.hub.log.WithField("context", l.id)
}

// GetItem reads key from the backend
func (l *Local) GetItem(key string) (string, bool, error) {
	return l.hub.repo.Get(key)
}

// SetItem writes key and notifies the other contexts.
// Nothing is published when the write fails.
func (l *Local) SetItem(key, value string) error {
	_, err := l.setItem(key, value)
	return err
}

func (l *Local) setItem(key, value string) (uint64, error) {
	seq, err := l.hub.commit(key, func() error { return l.hub.repo.Set(key, value) })
	if err != nil {
		return 0, err
	}
	l.hub.publish(Change{Key: key, NewValue: value, Seq: seq, Source: l.id, At: time.Now()})
	return seq, nil
}

// RemoveItem deletes key and notifies the other contexts
func (l *Local) RemoveItem(key string) error {
	seq, err := l.hub.commit(key, func() error { return l.hub.repo.Delete(key) })
	if err != nil {
		return err
	}
	l.hub.publish(Change{Key: key, Removed: true, Seq: seq, Source: l.id, At: time.Now()})
	return nil
}

// OnStorage registers fn for changes made by other contexts.
// The returned function unregisters it.
func (l *Local) OnStorage(fn func(Change)) (cancel func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

func (l *Local) deliver(c Change) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	fns := make([]func(Change), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Close detaches the context from the hub; it stops receiving changes
func (l *Local) Close() {
	l.mu.Lock()
	l.closed = true
	l.listeners = make(map[int]func(Change))
	l.mu.Unlock()
	l.hub.detach(l.id)
}
