package feed

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"newsbrief/internal/httpx"
	"newsbrief/internal/models"
)

// window is the trailing time span an entry must fall into to qualify.
const window = 24 * time.Hour

type Fetcher struct {
	http *httpx.Client
	// now acts as time.Now, but can be mocked for testing.
	now func() time.Time
}

func NewFetcher(client *httpx.Client) *Fetcher {
	return &Fetcher{
		http: client,
		now:  time.Now,
	}
}

// FetchRecent retrieves the feed and returns, in feed order, the entries
// published within the last 24 hours. The lower bound is inclusive and
// both bounds are evaluated in UTC. Entries carrying neither a published
// nor an updated timestamp are dropped with a warning.
func (f *Fetcher) FetchRecent(ctx context.Context, feedURL string) ([]models.Entry, error) {
	log.Printf("Fetching RSS feed from: %s", feedURL)

	data, err := f.http.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		// Malformed feeds happen; report what we saw and carry on with
		// whatever was recovered (usually nothing).
		log.Printf("RSS feed may be malformed: %v", err)
		if parsed == nil {
			return nil, nil
		}
	}

	if len(parsed.Items) == 0 {
		log.Println("No entries found in the RSS feed.")
		return nil, nil
	}

	now := f.now().UTC()
	cutoff := now.Add(-window)

	var recent []models.Entry
	for _, item := range parsed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil {
			log.Printf("Entry %q has no parsable date. Skipping.", item.Title)
			continue
		}

		when := published.UTC()
		if when.Before(cutoff) {
			continue
		}

		log.Printf("Found recent entry: %q published at %s", item.Title, when)
		recent = append(recent, models.Entry{
			Title:     item.Title,
			Link:      item.Link,
			Published: when,
		})
	}

	log.Printf("Found %d recent entries from the last 24 hours.", len(recent))
	return recent, nil
}
