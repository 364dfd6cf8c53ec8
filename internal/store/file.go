package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExt = ".gob"

// File keeps every value in its own file, dir/<key>.gob. A value expires ttl
// after its file was last written.
type File struct {
	mu  sync.Mutex
	dir string
	ttl time.Duration
}

func NewFile(dir string, ttl time.Duration) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data dir: %w", err)
	}
	return &File{dir: dir, ttl: ttl}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

func (f *File) expired(info fs.FileInfo, now time.Time) bool {
	return !info.ModTime().Add(f.ttl).After(now)
}

func (f *File) Get(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	path := f.path(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if f.expired(info, time.Now()) {
		return ErrNotFound
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return decode(b, value)
}

// write replaces the file atomically through a temp file in the same dir.
func (f *File) write(key string, b []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *File) Set(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(key, b)
}

func (f *File) Add(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	info, err := os.Stat(f.path(key))
	if err == nil && !f.expired(info, time.Now()) {
		return ErrExists
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return f.write(key, b)
}

// Purge removes expired value files.
func (f *File) Purge(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	var n int64
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if f.expired(info, now) {
			if err := os.Remove(filepath.Join(f.dir, e.Name())); err == nil {
				n++
			}
		}
	}
	return n, nil
}

func (f *File) Close() error {
	return nil
}
