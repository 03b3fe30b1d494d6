package storage

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Value is a JSON document persisted under one key.
//
// The first read falls back to the default when the key is missing or does
// not parse. Every mutation writes the whole document synchronously; a failed
// write is logged and the in-memory value is kept. Changes pushed by other
// contexts replace the in-memory value unless a later write of the key has
// already been applied, so every context settles on the last committed write.
type Value[T any] struct {
	local *Local
	key   string
	def   func() T
	log   logrus.FieldLogger

	writeMu sync.Mutex // serialises read-modify-write cycles of this Value
	mu      sync.RWMutex
	cur     T
	seq     uint64 // last committed write applied to cur
	subs    map[int]func(T)
	nextSub int
	cancel  func()
}

// NewValue loads key through local and starts observing other contexts.
// def is called whenever a fresh default is needed.
func NewValue[T any](local *Local, key string, def func() T) *Value[T] {
	v := &Value[T]{
		local: local,
		key:   key,
		def:   def,
		log:   local.Logger().WithField("key", key),
		subs:  make(map[int]func(T)),
	}
	v.seq = local.hub.seq(key)
	v.cur = v.load()
	v.cancel = local.OnStorage(v.onStorage)
	return v
}

// Key returns the storage key
func (v *Value[T]) Key() string {
	return v.key
}

func (v *Value[T]) load() T {
	raw, ok, err := v.local.GetItem(v.key)
	if err != nil {
		v.log.WithError(err).Warn("failed to read stored value, using default")
		return v.def()
	}
	if !ok {
		return v.def()
	}
	parsed, err := v.decode(raw)
	if err != nil {
		v.log.WithError(err).Warn("stored value is corrupt, using default")
		return v.def()
	}
	return parsed
}

func (v *Value[T]) decode(raw string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Get returns the current value. Callers must not mutate maps or slices in it.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cur
}

// Set replaces the value
func (v *Value[T]) Set(val T) {
	v.Update(func(T) T { return val })
}

// Update applies fn to the current value and persists the result.
// fn must return a new value rather than mutate its argument in place.
// A write from another context that commits after this one wins; the result
// of fn is then dropped here as it is everywhere else.
func (v *Value[T]) Update(fn func(prev T) T) {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()

	next := fn(v.Get())
	seq, ok := v.persist(next)

	v.mu.Lock()
	if ok && seq <= v.seq {
		v.mu.Unlock()
		return
	}
	v.cur = next
	if ok {
		v.seq = seq
	}
	v.mu.Unlock()
	v.notify(next)
}

// persist writes val and returns the sequence number of the write
func (v *Value[T]) persist(val T) (uint64, bool) {
	data, err := json.Marshal(val)
	if err != nil {
		v.log.WithError(err).Error("failed to encode value")
		return 0, false
	}
	seq, err := v.local.setItem(v.key, string(data))
	if err != nil {
		v.log.WithError(err).Error("failed to write value")
		return 0, false
	}
	return seq, true
}

func (v *Value[T]) onStorage(c Change) {
	if c.Key != v.key {
		return
	}

	var next T
	if c.Removed {
		next = v.def()
	} else {
		parsed, err := v.decode(c.NewValue)
		if err != nil {
			v.log.WithError(err).WithField("source", c.Source).Warn("failed to parse storage event value")
			return
		}
		next = parsed
	}

	v.mu.Lock()
	if c.Seq <= v.seq {
		v.mu.Unlock()
		return
	}
	v.cur = next
	v.seq = c.Seq
	v.mu.Unlock()
	v.notify(next)
}

// Subscribe registers fn to be called with every new value, local or remote.
// The returned function unregisters it.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

func (v *Value[T]) notify(val T) {
	v.mu.RLock()
	fns := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.mu.RUnlock()

	for _, fn := range fns {
		fn(val)
	}
}

// Close stops observing other contexts
func (v *Value[T]) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}
