package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"propfinder/internal/model"
)

// Loader assembles unified property records from the three partial source
// files (basics, characteristics, images) and caches the merged result for
// the life of the process. Reload recomputes the merge; the swap is a full
// replace guarded by a read-write lock.
type Loader struct {
	basicsPath          string
	characteristicsPath string
	imagesPath          string

	mu    sync.RWMutex
	cache []model.PropertyRecord
}

// NewLoader creates a loader over the three source file paths.
func NewLoader(basicsPath, characteristicsPath, imagesPath string) *Loader {
	return &Loader{
		basicsPath:          basicsPath,
		characteristicsPath: characteristicsPath,
		imagesPath:          imagesPath,
	}
}

// Load returns the merged records, computing them on first use.
// A source file that cannot be read or parsed fails the whole load;
// there are no partial results.
func (l *Loader) Load(ctx context.Context) ([]model.PropertyRecord, error) {
	l.mu.RLock()
	cached := l.cache
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return l.Reload(ctx)
}

// Reload recomputes the merge from the source files and replaces the cache.
// The previous cache is kept when the reload fails.
func (l *Loader) Reload(ctx context.Context) ([]model.PropertyRecord, error) {
	merged, err := l.merge()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate drops the cache so the next Load recomputes the merge.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cache = nil
	l.mu.Unlock()
}

// GetByID returns the merged record with the given id.
func (l *Loader) GetByID(ctx context.Context, id string) (*model.PropertyRecord, error) {
	records, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, model.ErrNotFound
}

// merge performs the left-join-like union keyed on id. The basics set
// determines membership and output order; characteristics fields win over
// basics fields of the same name, and the reconciled size/images always win.
func (l *Loader) merge() ([]model.PropertyRecord, error) {
	var basics, characteristics []model.SourceEntry
	if err := readJSONFile(l.basicsPath, &basics); err != nil {
		return nil, err
	}
	if err := readJSONFile(l.characteristicsPath, &characteristics); err != nil {
		return nil, err
	}
	var images []model.ImageEntry
	if err := readJSONFile(l.imagesPath, &images); err != nil {
		return nil, err
	}

	characteristicsByID := make(map[string]model.SourceEntry, len(characteristics))
	for _, entry := range characteristics {
		characteristicsByID[entry.ID.String()] = entry
	}
	imagesByID := make(map[string]model.ImageEntry, len(images))
	for _, entry := range images {
		imagesByID[entry.ID.String()] = entry
	}

	merged := make([]model.PropertyRecord, 0, len(basics))
	for _, basic := range basics {
		id := basic.ID.String()
		record := reconcileRecord(id, basic, characteristicsByID[id])
		record.Images = resolveImages(imagesByID[id])
		merged = append(merged, record)
	}

	return merged, nil
}

// reconcileRecord merges one basics entry with its characteristics entry,
// field by field. The characteristics id never clobbers the canonical id.
func reconcileRecord(id string, basic, characteristic model.SourceEntry) model.PropertyRecord {
	record := model.PropertyRecord{
		ID:        id,
		Title:     stringValue(basic.Title),
		Location:  stringValue(basic.Location),
		Price:     basic.Price,
		Bedrooms:  basic.Bedrooms,
		Bathrooms: basic.Bathrooms,
		Amenities: basic.Amenities,
	}

	if characteristic.Title != nil {
		record.Title = *characteristic.Title
	}
	if characteristic.Location != nil {
		record.Location = *characteristic.Location
	}
	if characteristic.Price != nil {
		record.Price = characteristic.Price
	}
	if characteristic.Bedrooms != nil {
		record.Bedrooms = characteristic.Bedrooms
	}
	if characteristic.Bathrooms != nil {
		record.Bathrooms = characteristic.Bathrooms
	}
	if characteristic.Amenities != nil {
		record.Amenities = characteristic.Amenities
	}

	// Reconcile the two possible size field names into one value, exposed
	// under both names.
	size := characteristic.Size
	if size == nil {
		size = characteristic.SizeSqft
	}
	record.Size = size
	record.SizeSqft = size

	if record.Amenities == nil {
		record.Amenities = []string{}
	}

	return record
}

// resolveImages prefers the image list; a lone image_url is promoted to a
// one-element list.
func resolveImages(entry model.ImageEntry) []string {
	if len(entry.Images) > 0 {
		return entry.Images
	}
	if entry.ImageURL != nil && *entry.ImageURL != "" {
		return []string{*entry.ImageURL}
	}
	return []string{}
}

func readJSONFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse source file %s: %w", path, err)
	}
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
