package service

import (
	"context"
	"strings"

	"propfinder/internal/model"
)

// Comparer matches two free-text addresses against the merged records and
// enriches each match with a predicted price from the external scorer.
type Comparer struct {
	scorer PriceScorer
}

// NewComparer creates a comparison matcher backed by the given scorer.
func NewComparer(scorer PriceScorer) *Comparer {
	return &Comparer{scorer: scorer}
}

// Compare picks the best-matching record for each address and attaches a
// price prediction. When fewer than two distinct records are available it
// returns ErrNoListings instead of reusing a record for both sides.
func (c *Comparer) Compare(ctx context.Context, addressA, addressB string, records []model.PropertyRecord) (*model.ComparisonResult, error) {
	used := make(map[string]bool)

	propA, ok := pickProperty(addressA, records, used)
	if !ok {
		return nil, model.ErrNoListings
	}
	propB, ok := pickProperty(addressB, records, used)
	if !ok {
		return nil, model.ErrNoListings
	}

	result := &model.ComparisonResult{
		Properties: make([]model.PredictedProperty, 0, 2),
	}
	for _, prop := range []model.PropertyRecord{propA, propB} {
		features := mapFeatures(prop)
		predicted := c.scorer.Predict(ctx, features, floatOrZero(prop.Price))
		result.Properties = append(result.Properties, model.PredictedProperty{
			PropertyRecord: prop,
			PredictedPrice: predicted,
			Features:       features,
		})
	}

	return result, nil
}

// pickProperty returns the first unused record whose location or title
// overlaps the address, falling back to the first unused record. Scan order
// is the record order.
func pickProperty(address string, records []model.PropertyRecord, used map[string]bool) (model.PropertyRecord, bool) {
	addressNorm := strings.ToLower(address)

	for _, prop := range records {
		if used[prop.ID] {
			continue
		}
		loc := strings.ToLower(prop.Location)
		title := strings.ToLower(prop.Title)
		if (loc != "" && (strings.Contains(addressNorm, loc) || strings.Contains(loc, addressNorm))) ||
			(title != "" && strings.Contains(addressNorm, title)) {
			used[prop.ID] = true
			return prop, true
		}
	}

	for _, prop := range records {
		if !used[prop.ID] {
			used[prop.ID] = true
			return prop, true
		}
	}

	return model.PropertyRecord{}, false
}

// mapFeatures derives the scorer's feature vector from a record. The size
// value feeds exactly one of the two area fields depending on the inferred
// property type.
func mapFeatures(prop model.PropertyRecord) model.PropertyFeatures {
	title := strings.ToLower(prop.Title)

	size := 1800.0
	if prop.Size != nil {
		size = *prop.Size
	} else if prop.SizeSqft != nil {
		size = *prop.SizeSqft
	}

	propertyType := "SFH"
	if strings.Contains(title, "condo") || strings.Contains(title, "apartment") {
		propertyType = "Condo"
	}

	lotArea, buildingArea := int(size), 0
	if propertyType == "Condo" {
		lotArea, buildingArea = 0, int(size)
	}

	bedrooms := 2
	if prop.Bedrooms != nil {
		bedrooms = *prop.Bedrooms
	}
	bathrooms := 1
	if prop.Bathrooms != nil {
		bathrooms = *prop.Bathrooms
	}

	hasPool, hasGarage := false, false
	for _, a := range prop.Amenities {
		lower := strings.ToLower(a)
		if strings.Contains(lower, "pool") {
			hasPool = true
		}
		if strings.Contains(lower, "garage") {
			hasGarage = true
		}
	}

	return model.PropertyFeatures{
		PropertyType: propertyType,
		LotArea:      lotArea,
		BuildingArea: buildingArea,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		YearBuilt:    yearFromPrice(prop.Price),
		HasPool:      hasPool,
		HasGarage:    hasGarage,
		SchoolRating: schoolRating(prop.Location),
	}
}

// schoolRatings maps city keywords to a school-quality score.
var schoolRatings = map[string]int{
	"new york":      9,
	"miami":         8,
	"los angeles":   8,
	"austin":        7,
	"san francisco": 9,
	"chicago":       7,
	"dallas":        7,
	"seattle":       9,
	"boston":        9,
}

const defaultSchoolRating = 7

func schoolRating(location string) int {
	city := strings.ToLower(location)
	for key, rating := range schoolRatings {
		if strings.Contains(city, key) {
			return rating
		}
	}
	return defaultSchoolRating
}

// yearFromPrice synthesizes a construction-year estimate from price bands.
func yearFromPrice(price *float64) int {
	if price == nil {
		return 2008
	}
	switch {
	case *price > 1000000:
		return 2018
	case *price > 700000:
		return 2015
	case *price > 400000:
		return 2012
	default:
		return 2008
	}
}
