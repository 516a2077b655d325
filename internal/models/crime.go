package models

import "time"

// LocationCount is one entry of /map/getAllCrimeLocation. The backend has
// shipped the count under both "crimeCount" and "count"; the gateway decode
// step folds the two into Count.
type LocationCount struct {
	Name  string `json:"name"`
	Count int    `json:"-"`
}

// CrimeReport is the wire shape of one scraped report. The backend is not
// consistent about field names, so the alternates ship alongside the primary
// spellings; reports.Normalize folds them down to one value each.
type CrimeReport struct {
	ID           string     `json:"_id"`
	AltID        string     `json:"id"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	Link         string     `json:"link"`
	Source       string     `json:"source"`
	LocationName string     `json:"locationName"`
	Area         string     `json:"area"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}
