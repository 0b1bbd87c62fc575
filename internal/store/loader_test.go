package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propfinder/internal/model"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader(t *testing.T, basics, characteristics, images string) *Loader {
	t.Helper()
	dir := t.TempDir()
	return NewLoader(
		writeFixture(t, dir, "basics.json", basics),
		writeFixture(t, dir, "characteristics.json", characteristics),
		writeFixture(t, dir, "images.json", images),
	)
}

func TestLoaderMerge(t *testing.T) {
	loader := newTestLoader(t,
		`[
			{"id": 1, "title": "Cozy Home", "location": "Austin, TX", "price": 400000, "bedrooms": 3},
			{"id": "2", "title": "City Condo", "location": "San Francisco, CA", "price": 900000}
		]`,
		`[
			{"id": "1", "size": 1500, "bathrooms": 2},
			{"id": 2, "size_sqft": 900, "amenities": ["pool", "gym"]},
			{"id": "99", "size": 5000}
		]`,
		`[
			{"id": 1, "images": ["a.jpg", "b.jpg"]},
			{"id": "2", "image_url": "c.jpg"}
		]`,
	)

	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Basics determines membership and order; numeric ids are coerced to strings.
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)

	// Size is reconciled from either source field name and exposed under both.
	require.NotNil(t, records[0].Size)
	assert.Equal(t, 1500.0, *records[0].Size)
	assert.Equal(t, records[0].Size, records[0].SizeSqft)
	require.NotNil(t, records[1].SizeSqft)
	assert.Equal(t, 900.0, *records[1].SizeSqft)
	assert.Equal(t, records[1].Size, records[1].SizeSqft)

	// Characteristics fields merge in without clobbering basics-only fields.
	require.NotNil(t, records[0].Bathrooms)
	assert.Equal(t, 2, *records[0].Bathrooms)
	require.NotNil(t, records[0].Bedrooms)
	assert.Equal(t, 3, *records[0].Bedrooms)
	assert.Equal(t, []string{"pool", "gym"}, records[1].Amenities)

	// Image list is used as-is; a lone image_url becomes a one-element list.
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, records[0].Images)
	assert.Equal(t, []string{"c.jpg"}, records[1].Images)
}

func TestLoaderMergeAnchoredOnBasics(t *testing.T) {
	loader := newTestLoader(t,
		`[{"id": "1", "title": "Only One", "location": "Austin, TX"}]`,
		`[{"id": "1", "size": 1000}, {"id": "2", "size": 2000}]`,
		`[{"id": "2", "image_url": "x.jpg"}]`,
	)

	records, err := loader.Load(context.Background())
	require.NoError(t, err)

	// A listing absent from basics never appears, even when the other two
	// sources know it.
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
}

func TestLoaderMergeMissingSidecarData(t *testing.T) {
	loader := newTestLoader(t,
		`[{"id": "7", "title": "Bare", "location": "Dallas, TX"}]`,
		`[]`,
		`[]`,
	)

	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Nil(t, records[0].Size)
	assert.Nil(t, records[0].SizeSqft)
	assert.Empty(t, records[0].Images)
	assert.Empty(t, records[0].Amenities)
}

func TestLoaderCharacteristicsPrecedence(t *testing.T) {
	loader := newTestLoader(t,
		`[{"id": "1", "title": "Old Title", "location": "Austin, TX", "price": 100}]`,
		`[{"id": "1", "title": "New Title", "price": 200}]`,
		`[]`,
	)

	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "New Title", records[0].Title)
	require.NotNil(t, records[0].Price)
	assert.Equal(t, 200.0, *records[0].Price)
	// The characteristics id never overwrites the canonical one.
	assert.Equal(t, "1", records[0].ID)
}

func TestLoaderSourceErrors(t *testing.T) {
	t.Run("unparsable source fails the whole load", func(t *testing.T) {
		loader := newTestLoader(t, `[{"id": "1"}]`, `not json`, `[]`)
		_, err := loader.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing source file fails the whole load", func(t *testing.T) {
		dir := t.TempDir()
		loader := NewLoader(
			writeFixture(t, dir, "basics.json", `[]`),
			filepath.Join(dir, "does-not-exist.json"),
			writeFixture(t, dir, "images.json", `[]`),
		)
		_, err := loader.Load(context.Background())
		assert.Error(t, err)
	})
}

func TestLoaderCaching(t *testing.T) {
	dir := t.TempDir()
	basicsPath := writeFixture(t, dir, "basics.json", `[{"id": "1", "title": "A", "location": "Austin, TX"}]`)
	loader := NewLoader(
		basicsPath,
		writeFixture(t, dir, "characteristics.json", `[]`),
		writeFixture(t, dir, "images.json", `[]`),
	)

	ctx := context.Background()
	records, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// A plain Load keeps serving the cached merge after the file changes.
	require.NoError(t, os.WriteFile(basicsPath, []byte(`[{"id": "1", "title": "A", "location": "Austin, TX"}, {"id": "2", "title": "B", "location": "Miami, FL"}]`), 0o644))
	records, err = loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// Reload recomputes.
	records, err = loader.Reload(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Invalidate forces the next Load to recompute too.
	require.NoError(t, os.WriteFile(basicsPath, []byte(`[]`), 0o644))
	loader.Invalidate()
	records, err = loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 0)
}

func TestLoaderGetByID(t *testing.T) {
	loader := newTestLoader(t,
		`[{"id": "1", "title": "A", "location": "Austin, TX"}]`,
		`[]`, `[]`,
	)

	record, err := loader.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "A", record.Title)

	_, err = loader.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
