package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/domain/journal"
)

// Repository defines persistence operations for the processing journal.
type Repository interface {
	Load(ctx context.Context) (*journal.History, error)
	Save(ctx context.Context, history *journal.History) error
}

// FileRepository persists the journal to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON journal file.
	path string
	// mu protects concurrent access to the journal file.
	mu sync.Mutex
}

// ErrNotFound is returned when the journal file does not exist yet.
var ErrNotFound = errors.New("journal not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the journal from disk.
func (r *FileRepository) Load(_ context.Context) (*journal.History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read journal file: %w", err)
	}

	var history journal.History
	if err = json.Unmarshal(contents, &history); err != nil {
		return nil, fmt.Errorf("decode journal file: %w", err)
	}

	return &history, nil
}

// Save writes the journal to disk.
func (r *FileRepository) Save(_ context.Context, history *journal.History) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write journal file: %w", err)
	}

	return nil
}
