package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "absent"); err != nil || found {
		t.Fatalf("Get(absent) = found=%v, err=%v", found, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "key")
	if err != nil || !found {
		t.Fatalf("Get = found=%v, err=%v", found, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("value survived Delete")
	}
	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found, _ := c.Get(ctx, "short"); found {
		t.Error("expired entry still served")
	}
}

func TestFileCacheKeysAreFilesystemSafe(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	// Keys with separators and dots must not escape the cache dir.
	key := "scan:../../etc/passwd"
	if err := c.Set(ctx, key, []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, _ := c.Get(ctx, key); !found {
		t.Error("hashed key not retrievable")
	}
}

func TestScanKey(t *testing.T) {
	a := ScanKey("/srv/code", []string{"vendor/"}, 10)
	b := ScanKey("/srv/code", []string{"vendor/"}, 10)
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	for name, other := range map[string]string{
		"DifferentPath":    ScanKey("/srv/other", []string{"vendor/"}, 10),
		"DifferentIgnores": ScanKey("/srv/code", []string{"build/"}, 10),
		"DifferentDepth":   ScanKey("/srv/code", []string{"vendor/"}, 5),
	} {
		if other == a {
			t.Errorf("%s: key collision", name)
		}
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Errorf("Get = found=%v, err=%v; want miss", found, err)
	}
}
