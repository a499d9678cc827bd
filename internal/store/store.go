package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/scenra/scenra/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key of the single persisted slot
var (
	bucketFavorites = []byte("favorites")
	keyMyList       = []byte("myList")
)

// schemaVersion is written with every snapshot. Version 0 is a bare JSON array.
const schemaVersion = 1

type snapshot struct {
	Version int                  `json:"version"`
	Items   []domain.CatalogItem `json:"items"`
}

// Favorites implements domain.FavoritesStore using BoltDB.
// The whole set is rewritten on every mutation, and the in-memory view only
// changes after the write commits.
type Favorites struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex // Protects items and order
	items map[domain.ItemKey]domain.CatalogItem
	order []domain.ItemKey // insertion order for stable rendering
}

var _ domain.FavoritesStore = (*Favorites)(nil)

// Open opens (creating if needed) the favorites database at path and loads it.
func Open(path string, logger *slog.Logger) (*Favorites, error) {
	if path == "" {
		return OpenMemory(logger), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	f := newFavorites(db, logger)
	if err := f.Load(); err != nil {
		db.Close()
		return nil, err
	}
	return f, nil
}

// OpenMemory returns a store without persistence
func OpenMemory(logger *slog.Logger) *Favorites {
	return newFavorites(nil, logger)
}

func newFavorites(db *bolt.DB, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = slog.Default()
	}
	return &Favorites{
		db:     db,
		logger: logger,
		items:  make(map[domain.ItemKey]domain.CatalogItem),
	}
}

func (f *Favorites) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

// Load replaces the in-memory set with the persisted one.
// A missing or unreadable payload yields an empty set.
func (f *Favorites) Load() error {
	if f.db == nil {
		return nil
	}

	var data []byte
	err := f.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFavorites)
		if b == nil {
			return nil
		}
		if v := b.Get(keyMyList); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read favorites: %w", err)
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		var perr *domain.PersistenceParseError
		if errors.As(err, &perr) {
			f.logger.Warn("discarding unreadable favorites", "error", err)
			items = nil
		} else {
			return err
		}
	}

	byKey, order := index(items)
	f.mu.Lock()
	f.items, f.order = byKey, order
	f.mu.Unlock()

	f.logger.Debug("loaded favorites", "count", len(order))
	return nil
}

// Items returns copies of all favorites in insertion order
func (f *Favorites) Items() []domain.CatalogItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

// Len returns the number of favorites
func (f *Favorites) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}

// Contains reports whether (kind, id) is pinned
func (f *Favorites) Contains(kind domain.MediaKind, id int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[domain.ItemKey{Kind: kind, ID: id}]
	return ok
}

// Add inserts or overwrites item. Overwriting keeps its list position.
func (f *Favorites) Add(item domain.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(item)
}

// Remove deletes (kind, id). Removing an absent item is a no-op.
func (f *Favorites) Remove(kind domain.MediaKind, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeLocked(domain.ItemKey{Kind: kind, ID: id})
}

// Toggle removes item when pinned and adds it otherwise.
// added reports which of the two happened.
func (f *Favorites) Toggle(item domain.CatalogItem) (added bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := item.Key()
	if _, ok := f.items[key]; ok {
		return false, f.removeLocked(key)
	}
	return true, f.addLocked(item)
}

// Find ranks favorites whose title fuzzily matches query (case and accent insensitive)
func (f *Favorites) Find(query string) []domain.CatalogItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	items := f.Items()
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.CatalogItem, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, items[r.OriginalIndex])
	}
	return out
}

func (f *Favorites) addLocked(item domain.CatalogItem) error {
	item = item.Clone()
	key := item.Key()

	items := make(map[domain.ItemKey]domain.CatalogItem, len(f.items)+1)
	for k, v := range f.items {
		items[k] = v
	}
	order := f.order
	if _, exists := items[key]; !exists {
		order = append(append([]domain.ItemKey(nil), f.order...), key)
	}
	items[key] = item

	return f.commitLocked(items, order)
}

func (f *Favorites) removeLocked(key domain.ItemKey) error {
	if _, ok := f.items[key]; !ok {
		return nil
	}

	items := make(map[domain.ItemKey]domain.CatalogItem, len(f.items))
	for k, v := range f.items {
		if k != key {
			items[k] = v
		}
	}
	order := make([]domain.ItemKey, 0, len(f.order))
	for _, k := range f.order {
		if k != key {
			order = append(order, k)
		}
	}

	return f.commitLocked(items, order)
}

// commitLocked persists the candidate set, then makes it visible
func (f *Favorites) commitLocked(items map[domain.ItemKey]domain.CatalogItem, order []domain.ItemKey) error {
	list := make([]domain.CatalogItem, 0, len(order))
	for _, k := range order {
		list = append(list, items[k])
	}

	if err := f.persist(list); err != nil {
		f.logger.Error("failed to save favorites", "error", err)
		return err
	}

	f.items, f.order = items, order
	return nil
}

func (f *Favorites) persist(list []domain.CatalogItem) error {
	if f.db == nil {
		return nil // Memory-only mode
	}

	data, err := json.Marshal(snapshot{Version: schemaVersion, Items: list})
	if err != nil {
		return err
	}
	return f.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketFavorites)
		if err != nil {
			return err
		}
		return b.Put(keyMyList, data)
	})
}

func (f *Favorites) listLocked() []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, f.items[k].Clone())
	}
	return out
}

// decodeSnapshot accepts the versioned envelope or a legacy bare array
func decodeSnapshot(data []byte) ([]domain.CatalogItem, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var raw []legacyItem
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &domain.PersistenceParseError{Err: err}
		}
		items := make([]domain.CatalogItem, len(raw))
		for i, it := range raw {
			items[i] = it.normalize()
		}
		return fillLegacyKinds(items), nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &domain.PersistenceParseError{Err: err}
	}
	if snap.Version > schemaVersion {
		return nil, &domain.PersistenceParseError{Err: fmt.Errorf("unsupported schema version %d", snap.Version)}
	}
	return fillLegacyKinds(snap.Items), nil
}

// legacyItem is a raw provider item as the bare-array layout stored it.
// Series carry "name" and "first_air_date" and often no "media_type".
type legacyItem struct {
	domain.CatalogItem
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

func (l legacyItem) normalize() domain.CatalogItem {
	it := l.CatalogItem
	if it.Kind != domain.MediaKindMovie && it.Kind != domain.MediaKindTV {
		it.Kind = ""
		if l.FirstAirDate != "" || (l.Name != "" && l.ReleaseDate == "") {
			it.Kind = domain.MediaKindTV
		}
	}
	if it.Title == "" {
		it.Title = l.Name
	}
	return it
}

// fillLegacyKinds defaults items still lacking a media kind to movies
func fillLegacyKinds(items []domain.CatalogItem) []domain.CatalogItem {
	for i := range items {
		if items[i].Kind == "" {
			items[i].Kind = domain.MediaKindMovie
		}
		if items[i].GenreIDs != nil {
			items[i].HasGenres = true
		}
	}
	return items
}

// index builds the keyed set, dropping duplicate keys (first wins)
func index(items []domain.CatalogItem) (map[domain.ItemKey]domain.CatalogItem, []domain.ItemKey) {
	byKey := make(map[domain.ItemKey]domain.CatalogItem, len(items))
	order := make([]domain.ItemKey, 0, len(items))
	for _, it := range items {
		k := it.Key()
		if _, dup := byKey[k]; dup {
			continue
		}
		byKey[k] = it
		order = append(order, k)
	}
	return byKey, order
}
