package view

import (
	"Pasikuthu/domain"
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Derive projects the collection through search, location, status and sort, in
// that order. Stats always describe the unfiltered collection. The input slice is
// never modified.
func Derive(donations []domain.Donation, filter domain.FilterState) domain.DonationView {
	visible := make([]domain.Donation, 0, len(donations))
	search := newMatcher(filter.SearchQuery)

	for _, d := range donations {
		if !search.matches(d) {
			continue
		}
		if filter.LocationFilter != "" && (d.Location == nil || *d.Location != filter.LocationFilter) {
			continue
		}
		if !statusMatches(d, filter.Status) {
			continue
		}
		visible = append(visible, d)
	}

	sortDonations(visible, filter.SortBy)

	return domain.DonationView{
		Donations: visible,
		Stats:     ComputeStatistics(donations),
		Locations: DistinctLocations(donations),
	}
}

// DistinctLocations lists the non-empty locations of the collection once each,
// in collation order. These are the values the location filter matches exactly.
func DistinctLocations(donations []domain.Donation) []string {
	seen := make(map[string]struct{})
	locations := make([]string, 0)

	for _, d := range donations {
		if d.Location == nil || *d.Location == "" {
			continue
		}
		if _, ok := seen[*d.Location]; ok {
			continue
		}
		seen[*d.Location] = struct{}{}
		locations = append(locations, *d.Location)
	}

	col := collate.New(language.English)
	slices.SortStableFunc(locations, func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return locations
}

func ComputeStatistics(donations []domain.Donation) domain.DonationStatistics {
	stats := domain.DonationStatistics{Total: len(donations)}
	locations := make(map[string]struct{})

	for _, d := range donations {
		if d.IsFinished() {
			stats.Finished++
		} else {
			stats.Active++
		}
		stats.TotalQuantity += d.Quantity
		if d.Location != nil && *d.Location != "" {
			locations[*d.Location] = struct{}{}
		}
	}
	stats.DistinctLocations = len(locations)

	return stats
}

func statusMatches(d domain.Donation, status domain.StatusFilter) bool {
	switch status {
	case domain.StatusActive:
		return d.Quantity > 0
	case domain.StatusFinished:
		return d.Quantity == 0
	default:
		return true
	}
}

type matcher struct {
	fold  cases.Caser
	query string
}

// newMatcher returns a matcher that accepts everything for a blank query.
func newMatcher(query string) *matcher {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	fold := cases.Fold()
	return &matcher{fold: fold, query: fold.String(query)}
}

func (m *matcher) matches(d domain.Donation) bool {
	if m == nil {
		return true
	}
	if m.contains(&d.FoodName) || m.contains(d.Description) || m.contains(d.DonorName) {
		return true
	}
	return false
}

func (m *matcher) contains(field *string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(m.fold.String(*field), m.query)
}

func sortDonations(donations []domain.Donation, key domain.SortKey) {
	switch key {
	case domain.SortByQuantity:
		slices.SortStableFunc(donations, func(a, b domain.Donation) int {
			return cmp.Compare(b.Quantity, a.Quantity)
		})
	case domain.SortByName:
		col := collate.New(language.English)
		slices.SortStableFunc(donations, func(a, b domain.Donation) int {
			return col.CompareString(a.FoodName, b.FoodName)
		})
	default:
		slices.SortStableFunc(donations, func(a, b domain.Donation) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
