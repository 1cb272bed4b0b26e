package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Resource is the backing word list of a dictionary.
type Resource interface {
	// Name identifies the resource in logs.
	Name() string
	Open() (io.ReadCloser, error)
}

// Appender is a Resource words can be appended to.
type Appender interface {
	Resource
	// Tail returns up to n trailing bytes, nothing for a missing or empty resource.
	Tail(n int) ([]byte, error)
	// Append writes p at the end, creating the resource if needed, and
	// returns the resulting size.
	Append(p []byte) (int64, error)
}

// FileResource is a word list on disk. When the exact path does not exist, a
// file in the same directory whose name differs only in case is used instead.
type FileResource struct {
	path string
}

// NewFileResource creates a resource for path.
func NewFileResource(path string) *FileResource {
	return &FileResource{path: path}
}

// Name implements Resource.
func (f *FileResource) Name() string {
	return f.path
}

// Path returns the configured path.
func (f *FileResource) Path() string {
	return f.path
}

// Open implements Resource.
func (f *FileResource) Open() (io.ReadCloser, error) {
	path, err := f.resolve()
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Tail implements Appender.
func (f *FileResource) Tail(n int) ([]byte, error) {
	path, err := f.resolve()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 || n <= 0 {
		return nil, nil
	}
	if int64(n) > size {
		n = int(size)
	}
	tail := make([]byte, n)
	if _, err := file.ReadAt(tail, size-int64(n)); err != nil {
		return nil, fmt.Errorf("failed to read tail of %s: %w", path, err)
	}
	return tail, nil
}

// Append implements Appender.
func (f *FileResource) Append(p []byte) (int64, error) {
	path, err := f.resolve()
	if errors.Is(err, fs.ErrNotExist) {
		path = f.path
	} else if err != nil {
		return 0, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	if _, err := file.Write(p); err != nil {
		file.Close()
		return 0, err
	}
	info, statErr := file.Stat()
	if err := file.Close(); err != nil {
		return 0, err
	}
	if statErr != nil {
		return 0, statErr
	}
	return info.Size(), nil
}

// resolve returns the path to use, retrying once with a case-insensitive
// match of the file name.
func (f *FileResource) resolve() (string, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return f.path, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	dir, base := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), base) {
			resolved := filepath.Join(dir, entry.Name())
			log.Debugf("Resolved %s case-insensitively to %s", f.path, resolved)
			return resolved, nil
		}
	}
	return "", err
}

// MemoryResource is a read-only word list held in memory.
type MemoryResource struct {
	name string
	data []byte
}

// NewMemoryResource creates a resource serving data.
func NewMemoryResource(name string, data []byte) *MemoryResource {
	return &MemoryResource{name: name, data: data}
}

// Name implements Resource.
func (m *MemoryResource) Name() string {
	return m.name
}

// Open implements Resource.
func (m *MemoryResource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}
