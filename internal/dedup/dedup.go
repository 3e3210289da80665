package dedup

import (
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
)

// DefaultThreshold is the minimum title similarity treated as a duplicate.
const DefaultThreshold = 0.9

type Option func(*Deduplicator)

func WithThreshold(threshold float64) Option {
	return func(d *Deduplicator) {
		d.threshold = threshold
	}
}

// Deduplicator collapses articles in two tiers: exact match on the
// (source, source_id) key, then near-duplicate titles across sources.
type Deduplicator struct {
	threshold float64
}

func New(opts ...Option) *Deduplicator {
	d := &Deduplicator{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dedupe returns the batch without duplicates. The output keeps first-seen
// order; a richer duplicate replaces the incumbent in its slot.
func (d *Deduplicator) Dedupe(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	titles := make([]string, 0, len(articles))
	byKey := make(map[domain.ArticleKey]int, len(articles))

	for _, a := range articles {
		if idx, ok := byKey[a.Key()]; ok {
			if prefer(a, out[idx]) {
				out[idx] = a
				titles[idx] = NormalizeTitle(a.Title)
			}
			continue
		}

		title := NormalizeTitle(a.Title)
		if idx := d.findNear(out, titles, a.Source, title); idx >= 0 {
			if prefer(a, out[idx]) {
				out[idx] = a
				titles[idx] = title
			}
			byKey[a.Key()] = idx
			continue
		}

		byKey[a.Key()] = len(out)
		out = append(out, a)
		titles = append(titles, title)
	}

	return out
}

// AgainstExisting matches candidates with already persisted articles. A
// candidate whose title near-duplicates a persisted article from another
// source takes over that article's key, so storing it enriches the existing
// row instead of adding a new one. It returns the number of re-keyed
// candidates.
func (d *Deduplicator) AgainstExisting(candidates []domain.Article, existing []domain.TitleRef) ([]domain.Article, int) {
	if len(existing) == 0 || len(candidates) == 0 {
		return candidates, 0
	}

	keys := make(map[domain.ArticleKey]struct{}, len(existing))
	titles := make([]string, len(existing))
	for i, ref := range existing {
		keys[ref.Key] = struct{}{}
		titles[i] = NormalizeTitle(ref.Title)
	}

	out := make([]domain.Article, len(candidates))
	rekeyed := 0
	for i, c := range candidates {
		out[i] = c
		if _, ok := keys[c.Key()]; ok {
			continue
		}

		title := NormalizeTitle(c.Title)
		for j, ref := range existing {
			if ref.Key.Source == c.Source {
				continue
			}
			if similar(title, titles[j], d.threshold) {
				out[i].Source = ref.Key.Source
				out[i].SourceID = ref.Key.SourceID
				rekeyed++
				break
			}
		}
	}

	return out, rekeyed
}

func (d *Deduplicator) findNear(kept []domain.Article, titles []string, source domain.Source, title string) int {
	for i := range kept {
		if kept[i].Source == source {
			continue
		}
		if similar(title, titles[i], d.threshold) {
			return i
		}
	}
	return -1
}

// prefer reports whether candidate should replace incumbent: only a strictly
// richer candidate wins, otherwise first-seen is kept.
func prefer(candidate, incumbent domain.Article) bool {
	return candidate.Richness() > incumbent.Richness()
}
