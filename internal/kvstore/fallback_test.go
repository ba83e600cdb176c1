package kvstore

import (
	"errors"
	"io"
	"testing"
)

// failStore fails every write once armed, to exercise degraded mode.
type failStore struct {
	*Memory
	failWrites bool
}

func (f *failStore) Set(key string, value []byte) error {
	if f.failWrites {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(key, value)
}

func (f *failStore) Remove(key string) error {
	if f.failWrites {
		return errors.New("quota exceeded")
	}
	return f.Memory.Remove(key)
}

func newQuietFallback(primary Store) *Fallback {
	fb := NewFallback(primary)
	fb.warnw = io.Discard
	return fb
}

func TestFallback_PassesThroughWhenHealthy(t *testing.T) {
	primary := NewMemory()
	fb := newQuietFallback(primary)

	if err := fb.Set("a", []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := primary.Get("a"); !ok || string(v) != "1" {
		t.Errorf("primary missing write: ok=%v v=%q", ok, v)
	}
	if fb.Degraded() {
		t.Error("expected healthy store to stay non-degraded")
	}
}

func TestFallback_DegradesOnWriteFailure(t *testing.T) {
	primary := &failStore{Memory: NewMemory(), failWrites: true}
	fb := newQuietFallback(primary)

	if err := fb.Set("a", []byte("1")); err != nil {
		t.Fatalf("Set should absorb failure, got %v", err)
	}
	if !fb.Degraded() {
		t.Fatal("expected degraded mode after write failure")
	}

	// The value must still be readable from the mirror.
	v, ok, err := fb.Get("a")
	if err != nil || !ok {
		t.Fatalf("Get after degrade: ok=%v err=%v", ok, err)
	}
	if string(v) != "1" {
		t.Errorf("Get = %q, want %q", v, "1")
	}
}

func TestFallback_DegradedWritesSkipPrimary(t *testing.T) {
	primary := &failStore{Memory: NewMemory(), failWrites: true}
	fb := newQuietFallback(primary)

	fb.Set("a", []byte("1"))
	primary.failWrites = false // primary recovers, but mode is sticky
	fb.Set("b", []byte("2"))

	if _, ok, _ := primary.Get("b"); ok {
		t.Error("degraded mode should not write through to primary")
	}
	if v, ok, _ := fb.Get("b"); !ok || string(v) != "2" {
		t.Errorf("mirror read = %q ok=%v, want 2", v, ok)
	}
}

func TestFallback_RemovedKeyStaysGoneWhileDegraded(t *testing.T) {
	primary := &failStore{Memory: NewMemory()}
	primary.Memory.Set("session", []byte("old-snapshot"))

	fb := newQuietFallback(primary)
	primary.failWrites = true
	fb.Set("other", []byte("x")) // degrade

	if err := fb.Remove("session"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if v, ok, _ := fb.Get("session"); ok {
		t.Errorf("removed key came back from primary: %q", v)
	}
}

func TestFallback_SetClearsTombstone(t *testing.T) {
	primary := &failStore{Memory: NewMemory()}
	primary.Memory.Set("session", []byte("old"))

	fb := newQuietFallback(primary)
	primary.failWrites = true
	fb.Set("other", []byte("x")) // degrade

	fb.Remove("session")
	fb.Set("session", []byte("new"))

	v, ok, _ := fb.Get("session")
	if !ok || string(v) != "new" {
		t.Errorf("Get after rewrite = %q ok=%v, want new", v, ok)
	}
}

func TestFallback_RemoveAbsorbsFailure(t *testing.T) {
	primary := &failStore{Memory: NewMemory()}
	primary.Memory.Set("a", []byte("1"))
	primary.failWrites = true

	fb := newQuietFallback(primary)
	if err := fb.Remove("a"); err != nil {
		t.Fatalf("Remove should absorb failure, got %v", err)
	}
	if !fb.Degraded() {
		t.Error("expected degraded mode after remove failure")
	}

	// The failed remove still takes effect from the caller's view.
	if v, ok, _ := fb.Get("a"); ok {
		t.Errorf("key survived a degraded remove: %q", v)
	}
}
