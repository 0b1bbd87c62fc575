package model

// CompareAddressesRequest asks for a prediction-backed comparison of two
// free-text addresses.
type CompareAddressesRequest struct {
	AddressA string `json:"address_a" binding:"required"`
	AddressB string `json:"address_b" binding:"required"`
}

// PropertyFeatures is the feature vector handed to the price scorer.
// Exactly one of LotArea/BuildingArea is non-zero depending on PropertyType.
type PropertyFeatures struct {
	PropertyType string `json:"property_type"`
	LotArea      int    `json:"lot_area"`
	BuildingArea int    `json:"building_area"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	YearBuilt    int    `json:"year_built"`
	HasPool      bool   `json:"has_pool"`
	HasGarage    bool   `json:"has_garage"`
	SchoolRating int    `json:"school_rating"`
}

// PredictedProperty is a matched record enriched with its predicted price and
// the feature vector that produced it.
type PredictedProperty struct {
	PropertyRecord
	PredictedPrice float64          `json:"predicted_price"`
	Features       PropertyFeatures `json:"features"`
}

// ComparisonResult holds the two enriched records of one comparison.
type ComparisonResult struct {
	Properties []PredictedProperty `json:"properties"`
}
