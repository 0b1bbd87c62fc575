package service

import (
	"sort"
	"strings"

	"propfinder/internal/model"
)

// ApplyFilters returns the records matching every supplied clause of the
// query, in sorted order. Absent clauses impose no constraint.
func ApplyFilters(records []model.PropertyRecord, query *model.QuerySpec) []model.PropertyRecord {
	results := make([]model.PropertyRecord, 0, len(records))

	for _, record := range records {
		if !matchesLocation(record, query.Locations) {
			continue
		}
		if !matchesPrice(record, query.MinPrice, query.MaxPrice) {
			continue
		}
		if query.MinBedrooms != nil && intOrZero(record.Bedrooms) < *query.MinBedrooms {
			continue
		}
		if query.MinBathrooms != nil && intOrZero(record.Bathrooms) < *query.MinBathrooms {
			continue
		}
		if !hasAllAmenities(record.Amenities, query.Amenities) {
			continue
		}
		results = append(results, record)
	}

	sortRecords(results, query.SortBy, query.SortOrder)
	return results
}

// Paginate returns the 1-indexed page slice, clamped to the sequence bounds.
// An out-of-range page yields an empty slice, never an error.
func Paginate(items []model.PropertyRecord, page, pageSize int) []model.PropertyRecord {
	if page < 1 || pageSize < 1 {
		return []model.PropertyRecord{}
	}
	// Compare before multiplying so a huge page number cannot overflow.
	if page-1 > len(items)/pageSize {
		return []model.PropertyRecord{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []model.PropertyRecord{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// matchesLocation compares each candidate against the record's city (the
// trimmed, lowercased part of the location before the first comma). The match
// is deliberately permissive in both directions so that "New York" matches
// "New York, NY" and abbreviated inputs still hit.
func matchesLocation(record model.PropertyRecord, candidates []string) bool {
	if len(candidates) == 0 {
		return true
	}

	city := cityOf(record.Location)
	active := false
	for _, candidate := range candidates {
		cand := strings.ToLower(strings.TrimSpace(candidate))
		if cand == "" {
			continue
		}
		active = true
		if cand == city ||
			strings.HasPrefix(city, cand) ||
			strings.Contains(city, cand) ||
			strings.Contains(cand, city) {
			return true
		}
	}
	// A candidate set with only blank entries imposes no constraint.
	return !active
}

// cityOf extracts the city portion of a "City, ST" location string.
func cityOf(location string) string {
	city := location
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	return strings.ToLower(strings.TrimSpace(city))
}

// matchesPrice applies the active price bounds. A record with no price fails
// any active bound rather than being treated as unbounded.
func matchesPrice(record model.PropertyRecord, minPrice, maxPrice *float64) bool {
	if minPrice != nil && (record.Price == nil || *record.Price < *minPrice) {
		return false
	}
	if maxPrice != nil && (record.Price == nil || *record.Price > *maxPrice) {
		return false
	}
	return true
}

// hasAllAmenities reports whether every requested amenity appears in the
// record's amenity set, case-insensitively.
func hasAllAmenities(recordAmenities, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(recordAmenities))
	for _, a := range recordAmenities {
		have[strings.ToLower(a)] = true
	}
	for _, want := range required {
		if !have[strings.ToLower(want)] {
			return false
		}
	}
	return true
}

// sortRecords stable-sorts by the requested key; a missing value sorts as 0.
// An unrecognized sort key leaves the post-filter order untouched.
func sortRecords(records []model.PropertyRecord, sortBy, sortOrder string) {
	desc := sortOrder == model.SortDesc

	switch sortBy {
	case model.SortByPrice:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := floatOrZero(records[i].Price), floatOrZero(records[j].Price)
			if desc {
				return a > b
			}
			return a < b
		})
	case model.SortByBedrooms:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := intOrZero(records[i].Bedrooms), intOrZero(records[j].Bedrooms)
			if desc {
				return a > b
			}
			return a < b
		})
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
