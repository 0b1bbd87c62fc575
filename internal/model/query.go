package model

// Supported sort keys. Any other value leaves the filtered set in its
// original order.
const (
	SortByPrice    = "price"
	SortByBedrooms = "bedrooms"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// QuerySpec carries the filter/sort/page parameters of one search request.
// Absent (nil or empty) clauses impose no constraint.
type QuerySpec struct {
	Locations    []string `json:"locations,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MinBathrooms *int     `json:"min_bathrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	SortBy       string   `json:"sort_by,omitempty"`
	SortOrder    string   `json:"sort_order,omitempty"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
}

// SearchResponse is the paged result of a property search.
type SearchResponse struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Results  []PropertyRecord `json:"results"`
}

// CompareRequest selects listings for a side-by-side view by id.
type CompareRequest struct {
	PropertyIDs []string `json:"property_ids" binding:"required"`
}

// SaveRequest marks a listing as saved for a user.
type SaveRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

// SavedProperty is a saved listing returned with its full record.
type SavedProperty struct {
	PropertyRecord
	Saved bool `json:"saved"`
}
