package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PropertyRecord is a unified listing assembled from the three source data sets.
// Size is exposed under both "size" and "size_sqft" for backward compatibility
// with older API consumers.
type PropertyRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Price     *float64 `json:"price,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Size      *float64 `json:"size,omitempty"`
	SizeSqft  *float64 `json:"size_sqft,omitempty"`
	Amenities []string `json:"amenities"`
	Images    []string `json:"images"`
}

// SourceEntry is one entry of the basics or characteristics data set.
// Every field except the id is optional; the merge reconciles them field
// by field with characteristics taking precedence.
type SourceEntry struct {
	ID        FlexID   `json:"id"`
	Title     *string  `json:"title,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Size      *float64 `json:"size,omitempty"`
	SizeSqft  *float64 `json:"size_sqft,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// ImageEntry is one entry of the images data set. A source may provide either
// a full image list or a single image_url.
type ImageEntry struct {
	ID       FlexID   `json:"id"`
	ImageURL *string  `json:"image_url,omitempty"`
	Images   []string `json:"images,omitempty"`
}

// FlexID accepts a JSON string or number and normalizes it to a string,
// since the three source files are not consistent about id types.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}
	return fmt.Errorf("id must be a string or number, got %s", string(data))
}

// MarshalJSON implements json.Marshaler
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexID) String() string {
	return string(f)
}

// ParseFloat is a small helper for query-string numeric parameters.
func ParseFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseInt is a small helper for query-string integer parameters.
func ParseInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
