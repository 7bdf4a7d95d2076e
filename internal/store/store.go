// Package store persists best scores per player.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Backend reads and writes per-user best scores.
type Backend interface {
	Load(user string) int
	Save(user string, score int) error
}

// Slot binds a Backend to one user. It satisfies loop.BestScoreStore.
type Slot struct {
	backend Backend
	user    string
}

// For returns the slot of user in b.
func For(b Backend, user string) Slot {
	return Slot{backend: b, user: user}
}

// LoadBestScore returns the stored best, or zero.
func (s Slot) LoadBestScore() int {
	return s.backend.Load(s.user)
}

// SaveBestScore records score if it beats the stored best.
func (s Slot) SaveBestScore(score int) error {
	return s.backend.Save(s.user, score)
}

// errMalformed marks a score file that exists but does not decode.
var errMalformed = errors.New("malformed score file")

// File keeps a msgpack-encoded map of user to best score on disk.
// Safe for concurrent use by multiple sessions of one process.
type File struct {
	path   string
	logger *log.Logger
	mu     sync.Mutex
}

// NewFile returns a store backed by the file at path. The file is created on first save.
func NewFile(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.Default()
	}
	return &File{path: path, logger: logger}
}

// Load returns user's best score. Missing or malformed files yield zero.
func (f *File) Load(user string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		f.logger.Warn("best score unreadable, using 0", "path", f.path, "err", err)
		return 0
	}
	return scores[user]
}

// Save stores score for user if it is higher than the current entry.
func (f *File) Save(user string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	switch {
	case errors.Is(err, errMalformed):
		f.logger.Warn("replacing malformed score file", "path", f.path, "err", err)
		scores = map[string]int{}
	case err != nil:
		return fmt.Errorf("read scores %s: %w", f.path, err)
	}
	if score <= scores[user] {
		return nil
	}
	scores[user] = score

	data, err := msgpack.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := writeAtomic(f.path, data); err != nil {
		return fmt.Errorf("write scores %s: %w", f.path, err)
	}
	return nil
}

// read decodes the score map. A missing file is an empty map, not an error.
func (f *File) read() (map[string]int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	scores := map[string]int{}
	if len(data) == 0 {
		return scores, nil
	}
	if err := msgpack.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return scores, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Memory is an in-process Backend, used by tests and when no file is configured.
type Memory struct {
	mu     sync.Mutex
	scores map[string]int
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{scores: map[string]int{}}
}

// Load returns user's best score.
func (m *Memory) Load(user string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[user]
}

// Save stores score for user if it is higher than the current entry.
func (m *Memory) Save(user string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.scores[user] {
		m.scores[user] = score
	}
	return nil
}
