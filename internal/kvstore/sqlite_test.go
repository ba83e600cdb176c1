package kvstore

import (
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SetGetRemove(t *testing.T) {
	s := openTestSQLite(t)

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get missing: ok=%v err=%v", ok, err)
	}

	if err := s.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(v) != `{"a":1}` {
		t.Errorf("Get = %q", v)
	}

	// Overwrite replaces, never appends.
	if err := s.Set("k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = s.Get("k")
	if string(v) != `{"a":2}` {
		t.Errorf("Get after overwrite = %q", v)
	}

	if err := s.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key should be gone after Remove")
	}

	// Removing an absent key is not an error.
	if err := s.Remove("k"); err != nil {
		t.Errorf("Remove absent: %v", err)
	}
}

func TestSQLite_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("persist", []byte("yes")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get("persist")
	if err != nil || !ok || string(v) != "yes" {
		t.Errorf("Get after reopen = %q ok=%v err=%v", v, ok, err)
	}
}
