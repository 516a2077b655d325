// Package feed derives the displayed post list from the fetched collection.
// It is pure: the caller re-applies the query whenever the source data, the
// filter, the search text, or the sort key changes, and the package holds no
// state of its own.
package feed

import (
	"sort"
	"strings"

	"github.com/citysafe/citysafe-go/internal/models"
)

type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortPopular SortKey = "popular"
	SortViews   SortKey = "views"
)

// FilterAll passes every post type.
const FilterAll = "all"

type Query struct {
	// Filter matches post.Type case-insensitively; FilterAll (or empty)
	// passes everything.
	Filter string
	// Search is matched case-insensitively as a substring of the post text,
	// author name, location, or any tag. Empty matches everything.
	Search string
	Sort   SortKey
}

// Apply filters and sorts posts. Sorting is stable: ties keep the incoming
// relative order. The input slice is not modified.
func Apply(posts []models.Post, q Query) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matches(&p, q) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Time.After(out[j].Time)
		})
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score() > out[j].Score()
		})
	case SortViews:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Views > out[j].Views
		})
	}
	return out
}

func matches(p *models.Post, q Query) bool {
	if q.Filter != "" && !strings.EqualFold(q.Filter, FilterAll) &&
		!strings.EqualFold(p.Type, q.Filter) {
		return false
	}

	needle := strings.ToLower(q.Search)
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Text), needle) ||
		strings.Contains(strings.ToLower(p.User.Name), needle) ||
		strings.Contains(strings.ToLower(p.Location), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Recommendations returns posts of the same type as current, excluding
// current itself. The post page sidebar shows these.
func Recommendations(posts []models.Post, current *models.Post) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		if strings.EqualFold(p.Type, current.Type) {
			out = append(out, p)
		}
	}
	return out
}
