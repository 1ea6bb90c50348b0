// Package source locates and loads the implementation file behind each
// compared framework.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions lists the supported implementation file suffixes in lookup order.
var DefaultExtensions = []string{".tsx", ".jsx", ".astro", ".vue", ".svelte"}

// ErrNotFound is returned when no candidate file exists for a framework.
var ErrNotFound = errors.New("implementation not found")

// NotFoundError names the framework whose implementation could not be located.
type NotFoundError struct {
	ID    string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no implementation for %q (tried %s)", e.ID, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Implementation is the raw source text of one framework's container component.
type Implementation struct {
	ID        string
	Path      string
	Extension string
	Source    string
}

// Reader loads `<id>Container<ext>` files from Dir, trying Extensions in order.
type Reader struct {
	Dir        string
	Extensions []string

	readFile func(string) ([]byte, error)
}

// NewReader returns a Reader over dir. A nil or empty extension list uses DefaultExtensions.
func NewReader(dir string, extensions []string) *Reader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Reader{Dir: dir, Extensions: extensions, readFile: os.ReadFile}
}

// Read returns the first existing candidate for id. Missing candidates are
// skipped; any other read failure is returned immediately.
func (r *Reader) Read(id string) (Implementation, error) {
	read := r.readFile
	if read == nil {
		read = os.ReadFile
	}

	tried := make([]string, 0, len(r.Extensions))
	for _, ext := range r.Extensions {
		name := id + "Container" + normalizeExt(ext)
		path := filepath.Join(r.Dir, name)
		data, err := read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				tried = append(tried, name)
				continue
			}
			return Implementation{}, fmt.Errorf("read %s: %w", path, err)
		}
		return Implementation{
			ID:        id,
			Path:      path,
			Extension: normalizeExt(ext),
			Source:    string(data),
		}, nil
	}
	return Implementation{}, &NotFoundError{ID: id, Tried: tried}
}

// ReadAll reads every id in order, stopping at the first failure.
func (r *Reader) ReadAll(ids []string) (map[string]Implementation, error) {
	out := make(map[string]Implementation, len(ids))
	for _, id := range ids {
		impl, err := r.Read(id)
		if err != nil {
			return nil, err
		}
		out[id] = impl
	}
	return out, nil
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
