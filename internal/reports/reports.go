// Package reports browses the scraped crime report feed: it normalizes the
// backend's uneven records, derives a category from keywords, and filters by
// query terms and date range.
package reports

import (
	"strings"
	"time"

	"github.com/citysafe/citysafe-go/internal/models"
)

// baseWindow caps browsing at the newest entries; the backend sends the feed
// latest-first.
const baseWindow = 100

type Category string

const (
	CategoryHomicide Category = "Homicide"
	CategoryTheft    Category = "Theft"
	CategoryAssault  Category = "Assault"
	CategoryFraud    Category = "Fraud"
	CategoryGeneral  Category = "General News"

	// CategoryAll disables category filtering.
	CategoryAll Category = "All"
)

// Report is a normalized crime report ready for display.
type Report struct {
	ID          string
	Title       string
	Summary     string
	Link        string
	Source      string
	Location    string
	PublishedAt *time.Time
	Category    Category
}

// Categorize derives a crime category from keywords in the text. Unmatched
// text falls into General News.
func Categorize(text string) Category {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "murder", "kill", "dead"):
		return CategoryHomicide
	case containsAny(lower, "theft", "rob", "steal"):
		return CategoryTheft
	case containsAny(lower, "assault", "attack"):
		return CategoryAssault
	case containsAny(lower, "fraud", "scam"):
		return CategoryFraud
	default:
		return CategoryGeneral
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Normalize folds each wire record's alternate fields down to one value
// each: id or _id, the first non-nil of publishedAt/createdAt/updatedAt, the
// link falling back to the source URL, a title cut from the summary when
// missing. Original order is kept.
func Normalize(raw []models.CrimeReport) []Report {
	out := make([]Report, 0, len(raw))
	for _, r := range raw {
		id := r.ID
		if id == "" {
			id = r.AltID
		}

		title := r.Title
		if title == "" && r.Summary != "" {
			// Cut on runes so a multibyte summary never yields a
			// truncated title with a broken final character.
			title = r.Summary
			if runes := []rune(title); len(runes) > 80 {
				title = string(runes[:80])
			}
		}
		if title == "" {
			title = "Untitled"
		}

		link := r.Link
		if link == "" {
			link = r.Source
		}

		location := r.LocationName
		if location == "" {
			location = r.Area
		}

		published := r.PublishedAt
		if published == nil {
			published = r.CreatedAt
		}
		if published == nil {
			published = r.UpdatedAt
		}

		out = append(out, Report{
			ID:          id,
			Title:       title,
			Summary:     r.Summary,
			Link:        link,
			Source:      r.Source,
			Location:    location,
			PublishedAt: published,
			Category:    Categorize(title + " " + r.Summary),
		})
	}
	return out
}

// Query filters the normalized feed.
type Query struct {
	// Search is split on whitespace; every term must appear in the report's
	// title, summary, source, or location.
	Search   string
	Category Category
	// From/To bound the publication date, inclusive. Either may be zero:
	// from-only runs through today, to-only means that single day. A
	// reversed range is swapped rather than rejected.
	From time.Time
	To   time.Time
}

// Filter applies the query to the newest baseWindow reports. When a date
// bound is set, reports without a parseable date are excluded and the result
// order flips to oldest-first, matching how the feed is read when hunting a
// date range.
func Filter(all []Report, q Query) []Report {
	base := all
	if len(base) > baseWindow {
		base = base[:baseWindow]
	}

	terms := strings.Fields(strings.ToLower(strings.TrimSpace(q.Search)))

	usingDates := !q.From.IsZero() || !q.To.IsZero()
	from, to := q.From, q.To
	if usingDates {
		switch {
		case !from.IsZero() && to.IsZero():
			to = endOfDay(time.Now())
		case from.IsZero() && !to.IsZero():
			from = startOfDay(to)
			to = endOfDay(to)
		default:
			from = startOfDay(from)
			to = endOfDay(to)
		}
		if from.After(to) {
			from, to = startOfDay(to), endOfDay(from)
		}
	}

	out := []Report{}
	for _, r := range base {
		if q.Category != "" && q.Category != CategoryAll && r.Category != q.Category {
			continue
		}

		if len(terms) > 0 {
			hay := strings.ToLower(r.Title + " " + r.Summary + " " + r.Source + " " + r.Location)
			ok := true
			for _, t := range terms {
				if !strings.Contains(hay, t) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}

		if usingDates {
			if r.PublishedAt == nil {
				continue
			}
			if r.PublishedAt.Before(from) || r.PublishedAt.After(to) {
				continue
			}
		}

		out = append(out, r)
	}

	if usingDates {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
