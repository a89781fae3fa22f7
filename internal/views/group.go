package views

import (
	"sort"

	"github.com/vbonduro/marineit/internal/domain"
)

// Group is one folder of a folder-style list view.
type Group[T any] struct {
	Key     string `json:"key"`
	Records []T    `json:"records"`
}

// GroupByDate partitions records by date, most recent date first. Records keep
// their relative order inside a group.
func GroupByDate[T any](records []T, date func(T) string) []Group[T] {
	return groupBy(records, date, func(a, b string) bool { return a > b })
}

// GroupByName partitions records by name, names in ascending order.
func GroupByName[T any](records []T, name func(T) string) []Group[T] {
	return groupBy(records, name, func(a, b string) bool { return a < b })
}

func groupBy[T any](records []T, key func(T) string, less func(a, b string) bool) []Group[T] {
	index := make(map[string]int)
	groups := make([]Group[T], 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool { return less(groups[i].Key, groups[j].Key) })
	return groups
}

// Flatten concatenates the records of groups in group order.
func Flatten[T any](groups []Group[T]) []T {
	out := make([]T, 0)
	for _, g := range groups {
		out = append(out, g.Records...)
	}
	return out
}

func WorkLogsByDate(logs []domain.WorkLog) []Group[domain.WorkLog] {
	return GroupByDate(logs, WorkLogDate)
}

func InspectionsByDate(inspections []domain.ShipInspection) []Group[domain.ShipInspection] {
	return GroupByDate(inspections, InspectionDate)
}

// AssetGroup is a name folder of the asset registry with per-status tallies.
type AssetGroup struct {
	Name        string         `json:"name"`
	Assets      []domain.Asset `json:"assets"`
	Total       int            `json:"total"`
	Active      int            `json:"active"`
	Maintenance int            `json:"maintenance"`
	Lost        int            `json:"lost"`
}

func AssetsByName(assets []domain.Asset) []AssetGroup {
	groups := GroupByName(assets, func(a domain.Asset) string { return a.Name })
	out := make([]AssetGroup, 0, len(groups))
	for _, g := range groups {
		ag := AssetGroup{Name: g.Key, Assets: g.Records, Total: len(g.Records)}
		for _, a := range g.Records {
			switch a.Status {
			case domain.AssetActive:
				ag.Active++
			case domain.AssetMaintenance:
				ag.Maintenance++
			case domain.AssetLost:
				ag.Lost++
			}
		}
		out = append(out, ag)
	}
	return out
}
