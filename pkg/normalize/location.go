package normalize

import "strings"

var CitySuggestions = []string{
	"Chennai",
	"Hyderabad",
	"Bengaluru",
	"Coimbatore",
	"Madurai",
	"Mumbai",
	"Delhi",
	"Kolkata",
	"Pune",
	"Kochi",
	"Trichy",
	"Salem",
	"Vizag",
	"Mysuru",
	"Ahmedabad",
}

// NormalizeLocation maps input onto the casing of a known city when one matches
// case-insensitively, and otherwise keeps the trimmed input verbatim.
func NormalizeLocation(input string, knownCities []string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	for _, city := range knownCities {
		if strings.EqualFold(city, trimmed) {
			return city, true
		}
	}
	return trimmed, true
}
