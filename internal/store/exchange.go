package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/scenra/scenra/internal/domain"
	"github.com/spf13/afero"
)

// Export writes the favorites as an indented JSON array to path on fs
func (f *Favorites) Export(fs afero.Fs, path string) (int, error) {
	items := f.Items()
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	f.logger.Info("exported favorites", "path", path, "count", len(items))
	return len(items), nil
}

// Import merges favorites from path on fs, accepting either an exported
// array or a raw snapshot. Items already pinned are overwritten in place.
func (f *Favorites) Import(fs afero.Fs, path string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	incoming, err := decodeSnapshot(data)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items := make(map[domain.ItemKey]domain.CatalogItem, len(f.items)+len(incoming))
	for k, v := range f.items {
		items[k] = v
	}
	order := append([]domain.ItemKey(nil), f.order...)

	merged := 0
	for _, it := range incoming {
		if it.ID <= 0 {
			continue
		}
		k := it.Key()
		if _, exists := items[k]; !exists {
			order = append(order, k)
		}
		items[k] = it.Clone()
		merged++
	}

	if err := f.commitLocked(items, order); err != nil {
		return 0, err
	}

	f.logger.Info("imported favorites", "path", path, "count", merged, "skipped", len(incoming)-merged)
	return merged, nil
}
