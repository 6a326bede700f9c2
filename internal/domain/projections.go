package domain

import "time"

// QuoteDisplay is the read projection of a quote joined with its author,
// category and tags. It is what callers render.
type QuoteDisplay struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Content       string        `json:"content"`
	Likes         int64         `json:"likes"`
	Views         int64         `json:"views"`
	DownloadCount int64         `json:"download_count"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        AuthorSummary `json:"author"`
	Category      CategoryRef   `json:"category"`
	Tags          []TagRef      `json:"tags"`
}

// AuthorSummary is the author part of QuoteDisplay.
type AuthorSummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// CategoryRef is the category part of QuoteDisplay.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef is a tag attached to QuoteDisplay.
type TagRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewQuoteDisplay builds the projection from a Quote with Author, Category
// and Tags preloaded.
func NewQuoteDisplay(q *Quote) *QuoteDisplay {
	d := &QuoteDisplay{
		ID:            q.ID,
		Slug:          q.Slug,
		Content:       q.Content,
		Likes:         q.Likes,
		Views:         q.Views,
		DownloadCount: q.DownloadCount,
		CreatedAt:     q.CreatedAt,
		Author: AuthorSummary{
			Name:  q.Author.Name,
			Slug:  q.Author.Slug,
			Image: q.Author.Image,
		},
		Category: CategoryRef{Name: q.Category.Name, Slug: q.Category.Slug},
		Tags:     make([]TagRef, 0, len(q.Tags)),
	}
	for _, t := range q.Tags {
		d.Tags = append(d.Tags, TagRef{Name: t.Name, Slug: t.Slug})
	}
	return d
}

// TrendingQuote is a ranked entry of the trending list.
type TrendingQuote struct {
	QuoteDisplay
	Score float64 `json:"score"`
}
