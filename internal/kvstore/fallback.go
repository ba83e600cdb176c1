package kvstore

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Fallback decorates a primary Store so that storage failures never reach
// callers. The first failed write switches the store into degraded mode:
// all subsequent traffic is served from an in-memory mirror, and anything
// written while degraded is lost when the process exits. That loss is an
// accepted limitation of degraded mode, not something Fallback tries to
// repair.
type Fallback struct {
	mu       sync.Mutex
	primary  Store
	mirror   *Memory
	removed  map[string]bool
	degraded bool
	warnw    io.Writer
}

// NewFallback wraps primary with degraded-mode handling. Warnings are
// written to stderr.
func NewFallback(primary Store) *Fallback {
	return &Fallback{
		primary: primary,
		mirror:  NewMemory(),
		removed: make(map[string]bool),
		warnw:   os.Stderr,
	}
}

func (f *Fallback) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	degraded := f.degraded
	tombstoned := f.removed[key]
	f.mu.Unlock()

	if degraded {
		// A key removed while degraded must stay gone even though the
		// primary still holds its last durable value.
		if tombstoned {
			return nil, false, nil
		}
		if v, ok, _ := f.mirror.Get(key); ok {
			return v, ok, nil
		}
	}

	v, ok, err := f.primary.Get(key)
	if err != nil {
		f.warn("read", key, err)
		return nil, false, nil
	}
	return v, ok, nil
}

func (f *Fallback) Set(key string, value []byte) error {
	f.mu.Lock()
	delete(f.removed, key)
	degraded := f.degraded
	f.mu.Unlock()

	if !degraded {
		err := f.primary.Set(key, value)
		if err == nil {
			return nil
		}
		f.warn("write", key, err)
		f.degrade()
	}
	return f.mirror.Set(key, value)
}

func (f *Fallback) Remove(key string) error {
	f.mirror.Remove(key)

	f.mu.Lock()
	degraded := f.degraded
	if degraded {
		f.removed[key] = true
	}
	f.mu.Unlock()
	if degraded {
		return nil
	}

	if err := f.primary.Remove(key); err != nil {
		f.warn("remove", key, err)
		f.mu.Lock()
		f.removed[key] = true
		f.mu.Unlock()
		f.degrade()
	}
	return nil
}

func (f *Fallback) Close() error {
	return f.primary.Close()
}

// Degraded reports whether the store has fallen back to memory-only mode.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

func (f *Fallback) degrade() {
	f.mu.Lock()
	f.degraded = true
	f.mu.Unlock()
}

func (f *Fallback) warn(op, key string, err error) {
	fmt.Fprintf(f.warnw, "warning: storage %s failed for %q, continuing without durability: %v\n", op, key, err)
}
