package pipeline

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"newsbrief/internal/models"
)

// User-facing notices for the terminal failure paths. Raw errors stay in
// the log; the chat only ever sees these.
const (
	noticeNoArticles   = "No new articles found in the RSS feed in the last 24 hours."
	noticeNoText       = "Found recent articles, but could not extract text content."
	noticeNoSummary    = "Failed to generate an AI news summary. No update could be produced."
	noticeCriticalFail = "A critical error occurred while preparing the news update. Check the logs."
)

const (
	captionPrefix = "Your 24hr News Summary:\n"
	maxCaptionLen = 200
)

type EntryFetcher interface {
	FetchRecent(ctx context.Context, feedURL string) ([]models.Entry, error)
}

type TextExtractor interface {
	Text(ctx context.Context, articleURL string) (string, error)
}

type Narrator interface {
	Narrative(ctx context.Context, corpus string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Messenger interface {
	SendText(text string) error
	SendLongText(text string) error
	SendAudio(audio []byte, caption string) error
}

// Pipeline sequences one fetch → extract → summarize → synthesize →
// deliver run. Each stage is a precondition for the next; any stage may
// end the run early with a chat notice.
type Pipeline struct {
	feeds     EntryFetcher
	extractor TextExtractor
	narrator  Narrator
	speech    Synthesizer
	bot       Messenger
}

func New(feeds EntryFetcher, extractor TextExtractor, narrator Narrator, speech Synthesizer, bot Messenger) *Pipeline {
	return &Pipeline{
		feeds:     feeds,
		extractor: extractor,
		narrator:  narrator,
		speech:    speech,
		bot:       bot,
	}
}

// Run executes one full pipeline pass. Failures never escape: every
// terminal path logs and attempts a chat notice, and an unexpected panic
// is caught here, logged with its stack and reported best-effort.
func (p *Pipeline) Run(ctx context.Context, feedURL string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Unhandled error in pipeline run: %v\n%s", r, debug.Stack())
			p.notify(noticeCriticalFail)
		}
	}()

	log.Println("Starting news aggregation process...")

	entries, err := p.feeds.FetchRecent(ctx, feedURL)
	if err != nil {
		log.Printf("Failed to fetch RSS feed: %v", err)
	}
	if len(entries) == 0 {
		log.Println("No recent articles found in the RSS feed. Nothing to process.")
		p.notify(noticeNoArticles)
		return
	}

	corpus := p.buildCorpus(ctx, entries)
	if corpus == "" {
		log.Println("No text could be extracted from recent articles.")
		p.notify(noticeNoText)
		return
	}
	log.Printf("Total length of extracted text corpus: %d", len(corpus))

	narrative, err := p.narrator.Narrative(ctx, corpus)
	if err != nil {
		log.Printf("Failed to generate narrative from LLM: %v", err)
		p.notify(noticeNoSummary)
		return
	}
	log.Println("Narrative generated successfully.")

	p.deliver(ctx, narrative)

	log.Println("News aggregation process finished.")
}

// buildCorpus extracts every linked entry's text and concatenates the
// results with per-article delimiters. Linkless entries and failed
// extractions are skipped; the remaining items keep feed order.
func (p *Pipeline) buildCorpus(ctx context.Context, entries []models.Entry) string {
	var sb strings.Builder
	for _, entry := range entries {
		if entry.Link == "" {
			log.Printf("Entry %q has no link. Skipping.", entry.Title)
			continue
		}

		text, err := p.extractor.Text(ctx, entry.Link)
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Link, err)
			continue
		}
		if text == "" {
			log.Printf("Skipping %s: extracted text is empty", entry.Link)
			continue
		}

		title := entry.Title
		if title == "" {
			title = "Untitled Article"
		}
		fmt.Fprintf(&sb, "--- Article: %s ---\n%s\n\n", title, text)
	}
	return sb.String()
}

// deliver tries the audio path first and falls back to chunked text.
// Exactly one of the two is the successful outcome.
func (p *Pipeline) deliver(ctx context.Context, narrative string) {
	audio, err := p.speech.Synthesize(ctx, narrative)
	if err != nil {
		log.Printf("Failed to generate audio: %v. Will send text version.", err)
	} else {
		if err := p.bot.SendAudio(audio, captionPrefix+captionFor(narrative)); err != nil {
			log.Printf("Failed to send audio summary: %v. Will attempt to send text version.", err)
		} else {
			log.Println("Audio summary sent to Telegram.")
			return
		}
	}

	log.Println("Sending text narrative to Telegram as fallback.")
	if err := p.bot.SendLongText(narrative); err != nil {
		log.Printf("Failed to send text narrative: %v", err)
		return
	}
	log.Println("Text narrative sent to Telegram.")
}

// captionFor derives a short audio caption from the narrative's first
// line, cut to 200 characters with an ellipsis marker.
func captionFor(narrative string) string {
	line, _, _ := strings.Cut(narrative, "\n")
	runes := []rune(line)
	if len(runes) > maxCaptionLen {
		return string(runes[:maxCaptionLen]) + "..."
	}
	return line
}

// notify is best-effort: a failed notice is logged and swallowed so it
// never escalates past the run.
func (p *Pipeline) notify(text string) {
	if err := p.bot.SendText(text); err != nil {
		log.Printf("Failed to send notification to Telegram: %v", err)
	}
}
