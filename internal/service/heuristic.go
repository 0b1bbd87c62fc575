package service

import (
	"regexp"
	"strconv"
	"strings"

	"propfinder/internal/model"
)

// clarifyText is returned when no searchable filter could be extracted.
const clarifyText = "I'd be happy to help you find properties! Could you tell me more about what you're looking for? For example, which city or area are you interested in? What's your budget range? How many bedrooms do you need?"

// defaultBedrooms is used when the input mentions bedrooms without an
// extractable count.
const defaultBedrooms = 2

// cityAlias maps a lowercase alias found in the input to the canonical city
// name. The table is ordered; the first matching alias wins.
type cityAlias struct {
	alias string
	city  string
}

var knownCities = []cityAlias{
	{"new york", "New York"},
	{"ny", "New York"},
	{"miami", "Miami"},
	{"los angeles", "Los Angeles"},
	{"la", "Los Angeles"},
	{"austin", "Austin"},
	{"san francisco", "San Francisco"},
	{"sf", "San Francisco"},
	{"chicago", "Chicago"},
	{"dallas", "Dallas"},
	{"seattle", "Seattle"},
	{"boston", "Boston"},
}

var locationKeywords = []string{"in ", "at ", "near ", "around "}

var (
	bedroomsRe = regexp.MustCompile(`(\d+)\s*(?:bed|bedroom)`)
	maxPriceRe = regexp.MustCompile(`(?:under|below|less than|max|maximum)\s*\$?(\d+)`)
	minPriceRe = regexp.MustCompile(`(?:over|above|more than|min|minimum)\s*\$?(\d+)`)
)

// HeuristicExtract is the deterministic rule-based filter extractor used when
// the language-model tier is unavailable or fails. Given the same input it
// always produces the same output.
func HeuristicExtract(text string) *model.FilterResult {
	lower := strings.ToLower(text)
	filters := &model.FilterResult{}

	if city := extractLocation(lower); city != "" {
		filters.Location = &city
	}

	if strings.Contains(lower, "bed") || strings.Contains(lower, "bedroom") {
		count := defaultBedrooms
		if m := bedroomsRe.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				count = n
			}
		}
		filters.MinBedrooms = &count
	}

	if m := maxPriceRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			filters.MaxPrice = &v
		}
	}
	if m := minPriceRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			filters.MinPrice = &v
		}
	}

	// Amenity keywords are checked in a fixed order.
	if strings.Contains(lower, "pool") {
		filters.Amenities = append(filters.Amenities, "pool")
	}
	if strings.Contains(lower, "garage") {
		filters.Amenities = append(filters.Amenities, "garage")
	}
	if strings.Contains(lower, "gym") || strings.Contains(lower, "fitness") {
		filters.Amenities = append(filters.Amenities, "gym")
	}

	return filters
}

// extractLocation scans the known-city table first, then falls back to
// location-introducing keywords followed by up to three title-cased words.
func extractLocation(lower string) string {
	for _, entry := range knownCities {
		if strings.Contains(lower, entry.alias) {
			return entry.city
		}
	}

	for _, keyword := range locationKeywords {
		idx := strings.Index(lower, keyword)
		if idx < 0 {
			continue
		}
		remaining := strings.TrimSpace(lower[idx+len(keyword):])
		words := strings.Fields(remaining)
		if len(words) == 0 {
			break
		}
		if len(words) > 3 {
			words = words[:3]
		}
		return titleCase(strings.Join(words, " "))
	}

	return ""
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
