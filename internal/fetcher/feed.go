package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/httpclient"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/mmcdole/gofeed"
)

const abstractMaxRunes = 500

func fetchFeed(ctx context.Context, client *httpclient.Client, feedURL string) (*gofeed.Feed, error) {
	body, err := client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}
	return feed, nil
}

// itemID is the most stable identifier an RSS item offers.
func itemID(item *gofeed.Item) string {
	return stringsutil.FirstNonEmpty(item.GUID, item.Link)
}

func itemAuthors(item *gofeed.Item) []string {
	var authors []string
	for _, p := range item.Authors {
		if p != nil && p.Name != "" {
			authors = append(authors, p.Name)
		}
	}
	return authors
}

func itemPublished(item *gofeed.Item) *time.Time {
	t := item.PublishedParsed
	if t == nil {
		t = item.UpdatedParsed
	}
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// itemText returns the plain-text body and abstract of an item.
func itemText(item *gofeed.Item) (content string, abstract string) {
	content = stringsutil.StripHTML(item.Content)
	description := stringsutil.StripHTML(item.Description)
	abstract = stringsutil.Truncate(stringsutil.FirstNonEmpty(content, description), abstractMaxRunes)
	return content, abstract
}
