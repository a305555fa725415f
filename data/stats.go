package data

import "time"

// TimelineEntry records when a title entered the catalog.
type TimelineEntry struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the aggregate view over the whole catalog.
type Stats struct {
	TotalCount                int             `json:"totalCount"`
	EarliestPublication       *Book           `json:"earliestPublication"`
	LatestPublication         *Book           `json:"latestPublication"`
	TitlesByAlphabeticalOrder []string        `json:"titlesByAlphabeticalOrder"`
	TitlesByPublicationYear   []string        `json:"titlesByPublicationYear"`
	CreationTimeline          []TimelineEntry `json:"creationTimeline"`
}

// BuildStats assembles Stats from a count and three ascending orderings of
// the catalog. Each projection walks its own slice, so the slices may differ
// in length when writes land between the queries.
//
// EarliestPublication and LatestPublication are the first and last books
// by title, not by publication year.
func BuildStats(count int, byTitle, byYear, byCreation []*Book) Stats {
	stats := Stats{
		TotalCount:                count,
		TitlesByAlphabeticalOrder: make([]string, 0, len(byTitle)),
		TitlesByPublicationYear:   make([]string, 0, len(byYear)),
		CreationTimeline:          make([]TimelineEntry, 0, len(byCreation)),
	}
	if len(byTitle) > 0 {
		stats.EarliestPublication = byTitle[0]
		stats.LatestPublication = byTitle[len(byTitle)-1]
	}
	for _, b := range byTitle {
		stats.TitlesByAlphabeticalOrder = append(stats.TitlesByAlphabeticalOrder, b.Title)
	}
	for _, b := range byYear {
		stats.TitlesByPublicationYear = append(stats.TitlesByPublicationYear, b.Title)
	}
	for _, b := range byCreation {
		stats.CreationTimeline = append(stats.CreationTimeline, TimelineEntry{Title: b.Title, CreatedAt: b.CreatedAt})
	}
	return stats
}
