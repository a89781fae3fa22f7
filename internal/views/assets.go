package views

import (
	"sort"

	"github.com/vbonduro/marineit/internal/domain"
)

// AssetSummary holds the dashboard tallies over the full asset registry.
type AssetSummary struct {
	ByCategory         map[string]int                  `json:"byCategory"`
	ByLocationCategory map[domain.LocationCategory]int `json:"byLocationCategory"`
	ByStatus           map[domain.AssetStatus]int      `json:"byStatus"`
}

// Summarize counts assets by category, location category and status in a
// single pass. Every status is present in ByStatus, zero or not.
func Summarize(assets []domain.Asset) AssetSummary {
	s := AssetSummary{
		ByCategory:         make(map[string]int),
		ByLocationCategory: make(map[domain.LocationCategory]int),
		ByStatus:           make(map[domain.AssetStatus]int, len(domain.AssetStatuses)),
	}
	for _, st := range domain.AssetStatuses {
		s.ByStatus[st] = 0
	}
	for _, a := range assets {
		s.ByCategory[a.Category]++
		s.ByLocationCategory[a.LocationCategory]++
		s.ByStatus[a.Status]++
	}
	return s
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TopCategories returns at most n categories, largest first. Ties are broken
// by category name so the order is stable between calls.
func (s AssetSummary) TopCategories(n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(s.ByCategory))
	for c, count := range s.ByCategory {
		out = append(out, CategoryCount{Category: c, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LocationStat is one row of a category drill-down.
type LocationStat struct {
	LocationName            string                  `json:"locationName"`
	Count                   int                     `json:"count"`
	LocationCategory        domain.LocationCategory `json:"locationCategory"`
	RepresentativeStaffName string                  `json:"representativeStaffName"`
}

// DrillDown breaks the assets of one category down by location name, largest
// first. Location category and staff name come from the first asset seen at
// each location.
func DrillDown(assets []domain.Asset, category string) []LocationStat {
	index := make(map[string]int)
	stats := make([]LocationStat, 0)
	for _, a := range assets {
		if a.Category != category {
			continue
		}
		i, ok := index[a.LocationName]
		if !ok {
			i = len(stats)
			index[a.LocationName] = i
			stats = append(stats, LocationStat{
				LocationName:            a.LocationName,
				LocationCategory:        a.LocationCategory,
				RepresentativeStaffName: a.StaffName,
			})
		}
		stats[i].Count++
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}
