package domain

import (
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
)

const (
	MaxFilterDays  = 3650
	MinSearchQuery = 2
)

type ArticleFilter struct {
	Source         Source `json:"source,omitempty" query:"source"`
	Category       string `json:"category,omitempty" query:"category"`
	Days           int    `json:"days,omitempty" query:"days"`
	BookmarkedOnly bool   `json:"bookmarked,omitempty" query:"bookmarked"`
}

func (f *ArticleFilter) Validate() error {
	if f.Source != "" && !f.Source.Valid() {
		return apperr.NewValidation("invalid source: " + string(f.Source))
	}
	if f.Days < 0 || f.Days > MaxFilterDays {
		return apperr.NewValidation("days must be between 0 and 3650")
	}
	return nil
}

// PublishedAfter returns the lower bound of the day window, if any.
func (f *ArticleFilter) PublishedAfter(now time.Time) *time.Time {
	if f.Days <= 0 {
		return nil
	}
	t := now.AddDate(0, 0, -f.Days)
	return &t
}
