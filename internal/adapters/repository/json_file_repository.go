package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

var (
	_ domain.WeeklyRepository  = (*JSONFileWeeklyRepository)(nil)
	_ domain.HistoryRepository = (*JSONFileHistoryRepository)(nil)
)

// JSONFileWeeklyRepository keeps the whole aggregate in a single JSON file.
type JSONFileWeeklyRepository struct {
	path string

	mu sync.Mutex
}

func NewJSONFileWeeklyRepository(path string) *JSONFileWeeklyRepository {
	return &JSONFileWeeklyRepository{path: path}
}

func (r *JSONFileWeeklyRepository) Load(ctx context.Context) (*domain.WeeklyData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", r.path, err)
	}

	var data domain.WeeklyData
	if err := json.Unmarshal(raw, &data); err != nil {
		backupPath := r.path + ".corrupt"
		_ = os.Rename(r.path, backupPath)
		log.Printf("[STORE] Corrupt state file moved to %s", backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", r.path, backupPath, err)
	}

	if err := data.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid state in %s: %w", r.path, err)
	}

	return &data, nil
}

// Save writes to a temp file and renames it over the previous state.
func (r *JSONFileWeeklyRepository) Save(ctx context.Context, data *domain.WeeklyData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSONAtomic(r.path, data)
}

// JSONFileHistoryRepository keeps the append-only history as a JSON array
// next to the aggregate file.
type JSONFileHistoryRepository struct {
	path string

	mu sync.Mutex
}

func NewJSONFileHistoryRepository(path string) *JSONFileHistoryRepository {
	return &JSONFileHistoryRepository{path: path}
}

// HistoryPathFor derives the history file from the aggregate file.
func HistoryPathFor(dataFile string) string {
	return strings.TrimSuffix(dataFile, filepath.Ext(dataFile)) + ".history.json"
}

func (r *JSONFileHistoryRepository) Append(ctx context.Context, item *domain.CompletedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.ID == item.ID {
			return domain.ErrHistoryItemDuplicate
		}
	}

	return writeJSONAtomic(r.path, append(items, item))
}

func (r *JSONFileHistoryRepository) List(ctx context.Context, itemType domain.ItemType, limit int) ([]*domain.CompletedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return nil, err
	}

	list := []*domain.CompletedItem{}
	for i := len(items) - 1; i >= 0; i-- {
		if itemType != "" && items[i].Type != itemType {
			continue
		}
		list = append(list, items[i])
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

func (r *JSONFileHistoryRepository) read() ([]*domain.CompletedItem, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", r.path, err)
	}

	var items []*domain.CompletedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("corrupt JSON in %s: %w", r.path, err)
	}
	return items, nil
}

func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
