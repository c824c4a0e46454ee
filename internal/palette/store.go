package palette

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Store reads and writes one palette file.
// It is safe for concurrent use.
type Store struct {
	path     string
	format   Format
	debounce time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	lastSaved []byte
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce sets the settle time used by Watch.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithLogger sets the logger for save and reload events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store for path. The format follows the extension.
func NewStore(path string, opts ...Option) (*Store, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving palette path: %w", err)
	}
	s := &Store{
		path:     abs,
		format:   f,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the absolute palette path.
func (s *Store) Path() string {
	return s.path
}

// Format returns the file encoding.
func (s *Store) Format() Format {
	return s.format
}

// Load reads the palette. A missing file yields an empty palette.
func (s *Store) Load() ([]tile.Definition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading palette %s: %w", s.path, err)
	}
	return Decode(s.format, s.path, data)
}

// Apply loads the palette into reg, replacing its contents, and returns
// the number of definitions loaded. A missing file leaves reg untouched.
func (s *Store) Apply(reg *tile.Registry) (int, error) {
	defs, err := s.Load()
	if err != nil {
		return 0, err
	}
	if defs == nil {
		return 0, nil
	}
	reg.Restore(defs)
	return len(defs), nil
}

// Save writes defs to the palette file, replacing it atomically.
func (s *Store) Save(defs []tile.Definition) error {
	data, err := Encode(s.format, defs)
	if err != nil {
		return fmt.Errorf("encoding palette: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.lastSaved = data
	s.logger.Debug("palette saved", "path", s.path, "tiles", len(defs))
	return nil
}

// Persist implements tile.Persister.
func (s *Store) Persist(defs []tile.Definition) error {
	return s.Save(defs)
}

// savedByUs reports whether data is what the last Save wrote.
func (s *Store) savedByUs(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved != nil && bytes.Equal(data, s.lastSaved)
}

// writeFileAtomic writes through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating palette directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".palette-*")
	if err != nil {
		return fmt.Errorf("creating temporary palette: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing palette: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing palette: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replacing palette %s: %w", path, err)
	}
	return nil
}
