// Package crimemap merges the fixed area catalog with server-supplied
// incident counts and derives a severity bucket and display radius for each
// area. Thresholds are statistical, recomputed in full on every refresh, so
// a stale spread never colors a fresh dataset.
package crimemap

import (
	"math"
	"sort"
	"strings"

	"github.com/citysafe/citysafe-go/internal/models"
)

type Severity int

// Severity buckets in ascending risk order. The integer ordering is the
// ranking: a higher value never attaches to a lower count under the same
// thresholds.
const (
	SeveritySafe Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityVeryHigh
)

func (s Severity) String() string {
	switch s {
	case SeveritySafe:
		return "Safe"
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

// Config carries the tuning factors. The defaults reproduce the production
// values; they are parameters here because nothing in the data dictates them.
type Config struct {
	// SpreadFactor widens the low/high thresholds around the mean as a
	// fraction of the count range.
	SpreadFactor float64
	// RadiusGain is the maximum fractional growth of an area's display
	// radius at the dataset's peak count.
	RadiusGain float64
	// VeryHighFactor positions the Very High cutoff inside the high band,
	// as a fraction of the span above the high threshold.
	VeryHighFactor float64
}

func DefaultConfig() Config {
	return Config{SpreadFactor: 0.25, RadiusGain: 0.4, VeryHighFactor: 0.6}
}

// Thresholds are the derived extrema and cutoffs for one dataset.
type Thresholds struct {
	Min, Max      int
	Avg           float64
	LowThreshold  float64
	HighThreshold float64
}

// AreaDensity is one catalog area resolved against the current dataset.
type AreaDensity struct {
	Area
	Count    int
	Severity Severity
	// Radius is the display radius in meters: the base footprint grown by
	// at most RadiusGain, so intensity shows without misrepresenting the
	// area's actual extent.
	Radius float64
}

// Stats tallies the severity buckets plus the total incident count.
type Stats struct {
	Total    int
	Safe     int
	Low      int
	Medium   int
	High     int
	VeryHigh int
}

type Result struct {
	Areas      []AreaDensity
	Thresholds Thresholds
	Stats      Stats
}

// Aggregate resolves every catalog area against the server counts. Names are
// matched case-insensitively after trimming; counts for unknown names are
// dropped; catalog areas missing from the data count as zero, so the full
// catalog always renders even from an empty response.
func Aggregate(counts []models.LocationCount, cfg Config) Result {
	byName := make(map[string]int, len(counts))
	for _, c := range counts {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			continue
		}
		byName[key] = c.Count
	}

	resolved := make([]AreaDensity, len(Catalog))
	for i, area := range Catalog {
		resolved[i] = AreaDensity{
			Area:  area,
			Count: byName[strings.ToLower(area.Name)],
		}
	}

	th := computeThresholds(resolved, cfg)

	var stats Stats
	for i := range resolved {
		a := &resolved[i]
		a.Severity = ClassifySeverity(a.Count, th, cfg)
		a.Radius = displayRadius(a.BaseRadius, a.Count, th.Max, cfg)

		stats.Total += a.Count
		switch a.Severity {
		case SeveritySafe:
			stats.Safe++
		case SeverityLow:
			stats.Low++
		case SeverityMedium:
			stats.Medium++
		case SeverityHigh:
			stats.High++
		case SeverityVeryHigh:
			stats.VeryHigh++
		}
	}

	return Result{Areas: resolved, Thresholds: th, Stats: stats}
}

func computeThresholds(areas []AreaDensity, cfg Config) Thresholds {
	if len(areas) == 0 {
		return Thresholds{}
	}

	min, max, sum := areas[0].Count, areas[0].Count, 0
	for _, a := range areas {
		if a.Count < min {
			min = a.Count
		}
		if a.Count > max {
			max = a.Count
		}
		sum += a.Count
	}
	avg := float64(sum) / float64(len(areas))
	spread := cfg.SpreadFactor * float64(max-min)

	return Thresholds{
		Min:           min,
		Max:           max,
		Avg:           avg,
		LowThreshold:  avg - spread,
		HighThreshold: avg + spread,
	}
}

// ClassifySeverity buckets a count against the dataset's thresholds.
//
// Zero incidents is always Safe, regardless of where the thresholds fall: a
// single hotspot can drag the low threshold negative, and that must not
// reclassify untouched areas. A flat distribution (max == min) has no
// informative spread, so every area is Medium. Inside the high band a second,
// steeper cutoff separates extreme outliers (Very High) from merely high
// areas.
func ClassifySeverity(count int, th Thresholds, cfg Config) Severity {
	if count == 0 {
		return SeveritySafe
	}
	if th.Max == th.Min {
		return SeverityMedium
	}

	c := float64(count)
	if c > th.HighThreshold {
		span := float64(th.Max) - th.HighThreshold
		if span > 0 && c >= th.HighThreshold+math.Max(1, span*cfg.VeryHighFactor) {
			return SeverityVeryHigh
		}
		return SeverityHigh
	}
	if c > th.LowThreshold {
		return SeverityMedium
	}
	return SeverityLow
}

// displayRadius grows the base footprint in proportion to the area's share
// of the peak count, capped at RadiusGain. With no incidents anywhere the
// base radius is returned unchanged.
func displayRadius(base float64, count, max int, cfg Config) float64 {
	if max == 0 {
		return base
	}
	return math.Round(base * (1 + (float64(count)/float64(max))*cfg.RadiusGain))
}

// TopAreas returns the n highest-count areas, ties keeping catalog order.
func TopAreas(r Result, n int) []AreaDensity {
	sorted := make([]AreaDensity, len(r.Areas))
	copy(sorted, r.Areas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
