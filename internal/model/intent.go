package model

// Provider tags for intent parsing results.
const (
	ProviderOpenAI   = "openai"
	ProviderFallback = "fallback"
)

// FilterResult is the sparse filter object produced by text-intent parsing.
// Only keys that were actually recognized in the input are populated.
type FilterResult struct {
	Location     *string  `json:"location,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MinBathrooms *int     `json:"min_bathrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// IsSearchable reports whether at least one recognized filter key carries a
// meaningful value. An unsearchable result is distinct from a search that
// matched zero listings.
func (f *FilterResult) IsSearchable() bool {
	if f == nil {
		return false
	}
	if f.Location != nil && *f.Location != "" {
		return true
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		return true
	}
	if f.MinBedrooms != nil || f.MinBathrooms != nil {
		return true
	}
	return len(f.Amenities) > 0
}

// ToQuerySpec converts parsed filters into a search query.
func (f *FilterResult) ToQuerySpec() *QuerySpec {
	q := &QuerySpec{}
	if f == nil {
		return q
	}
	if f.Location != nil && *f.Location != "" {
		q.Locations = []string{*f.Location}
	}
	q.MinPrice = f.MinPrice
	q.MaxPrice = f.MaxPrice
	q.MinBedrooms = f.MinBedrooms
	q.MinBathrooms = f.MinBathrooms
	q.Amenities = f.Amenities
	return q
}

// IntentResult is the outcome of parsing a free-text query: the provider that
// produced it, the extracted filters when searchable, and an optional
// conversational reply.
type IntentResult struct {
	Provider string        `json:"provider"`
	Filters  *FilterResult `json:"filters,omitempty"`
	Text     string        `json:"text,omitempty"`
}
