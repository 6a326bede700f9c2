package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// seedAuthors and seedLines back the development catalog.
var (
	seedAuthors = []domain.AuthorProfile{
		{Name: "Rumi", Slug: "rumi"},
		{Name: "Hafez", Slug: "hafez"},
		{Name: "Kahlil Gibran", Slug: "kahlil-gibran"},
		{Name: "Ibn Khaldun", Slug: "ibn-khaldun"},
	}
	seedCategories = []domain.Category{
		{Name: "Wisdom", Slug: "wisdom"},
		{Name: "Love", Slug: "love"},
		{Name: "Patience", Slug: "patience"},
	}
	seedTags = []domain.Tag{
		{Name: "Life", Slug: "life"},
		{Name: "Hope", Slug: "hope"},
	}
	seedLines = []string{
		"What you seek is seeking you.",
		"Even after all this time the sun never says to the earth, you owe me.",
		"Out of suffering have emerged the strongest souls.",
		"Geography is the foundation of history.",
		"Patience is the key to joy.",
		"The wound is the place where the light enters you.",
	}
)

// SeedCatalog inserts n development quotes spread over a small fixed set of
// authors, categories and tags. Reference rows are upserted by slug, so the
// call can be repeated; quotes are always new.
func SeedCatalog(ctx context.Context, db *gorm.DB, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authors, err := upsertBySlug(tx, seedAuthors)
		if err != nil {
			return err
		}
		cats, err := upsertBySlug(tx, seedCategories)
		if err != nil {
			return err
		}
		tags, err := upsertBySlug(tx, seedTags)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			id := uuid.NewString()
			q := domain.Quote{
				ID:         id,
				Slug:       "seed-" + id[:8],
				Content:    seedLines[i%len(seedLines)],
				AuthorID:   authors[i%len(authors)].ID,
				CategoryID: cats[i%len(cats)].ID,
				Tags:       []domain.Tag{tags[i%len(tags)]},
			}
			if err := tx.Omit("Tags.*").Create(&q).Error; err != nil {
				return fmt.Errorf("seed quote %d: %w", i, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

type slugged interface {
	domain.AuthorProfile | domain.Category | domain.Tag
}

// upsertBySlug inserts missing rows and returns all rows with their stored ids.
func upsertBySlug[T slugged](tx *gorm.DB, rows []T) ([]T, error) {
	out := make([]T, len(rows))
	copy(out, rows)
	for i := range out {
		setID(&out[i], uuid.NewString())
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&out).Error; err != nil {
		return nil, err
	}
	slugs := make([]string, len(rows))
	for i := range rows {
		slugs[i] = slugOf(&rows[i])
	}
	var stored []T
	if err := tx.Where("slug IN ?", slugs).Order("slug").Find(&stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func setID[T slugged](row *T, id string) {
	switch r := any(row).(type) {
	case *domain.AuthorProfile:
		r.ID = id
	case *domain.Category:
		r.ID = id
	case *domain.Tag:
		r.ID = id
	}
}

func slugOf[T slugged](row *T) string {
	switch r := any(row).(type) {
	case *domain.AuthorProfile:
		return r.Slug
	case *domain.Category:
		return r.Slug
	case *domain.Tag:
		return r.Slug
	}
	return ""
}
