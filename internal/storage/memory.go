package storage

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// Memory is an in-process FileStore used by tests and local development.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Upload(_ context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[path] = data

	return nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var paths []string

	for p := range m.objects {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}

	sort.Strings(paths)

	return paths, nil
}

func (m *Memory) Delete(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range paths {
		delete(m.objects, p)
	}

	return nil
}

func (m *Memory) SignedURL(_ context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[path]; !ok {
		return "", ErrObjectNotFound
	}

	return "memory://" + path, nil
}

// Object returns the stored bytes for a path, for test assertions.
func (m *Memory) Object(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[path]

	return data, ok
}
