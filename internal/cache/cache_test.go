package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestRemember(t *testing.T) {
	c := New()

	t.Run("caches the produced value", func(t *testing.T) {
		calls := 0
		producer := func() (any, error) {
			calls++
			return "value", nil
		}

		for i := 0; i < 3; i++ {
			v, err := c.Remember("key", time.Minute, producer)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if v != "value" {
				t.Errorf("got %v, want value", v)
			}
		}
		if calls != 1 {
			t.Errorf("producer called %d times, want 1", calls)
		}
	})

	t.Run("producer errors are not cached", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		producer := func() (any, error) {
			calls++
			return nil, boom
		}

		for i := 0; i < 2; i++ {
			if _, err := c.Remember("err-key", time.Minute, producer); !errors.Is(err, boom) {
				t.Fatalf("expected boom, got: %v", err)
			}
		}
		if calls != 2 {
			t.Errorf("producer called %d times, want 2 (errors uncached)", calls)
		}
	})
}

func TestPutGetForget(t *testing.T) {
	c := New()

	c.Put("k", 42, time.Minute)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Errorf("Get = %v, %v", v, ok)
	}

	c.Forget("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected key to be forgotten")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Put("a", 1, time.Minute)
	c.Put("b", 2, time.Minute)
	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("expected cache to be empty after Clear")
	}
}

func TestHasFileChanged(t *testing.T) {
	c := New()
	fs := afero.NewMemMapFs()

	if err := afero.WriteFile(fs, "config.json", []byte(`{"name":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if !c.HasFileChanged(fs, "config.json") {
		t.Error("first sighting must report changed")
	}
	if c.HasFileChanged(fs, "config.json") {
		t.Error("unchanged file must not report changed")
	}

	if err := afero.WriteFile(fs, "config.json", []byte(`{"name":"y"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if !c.HasFileChanged(fs, "config.json") {
		t.Error("modified file must report changed")
	}

	if !c.HasFileChanged(fs, "missing.json") {
		t.Error("missing file must report changed")
	}
}
