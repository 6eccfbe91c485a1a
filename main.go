// Command newsbrief is a single-run pipeline that polls one RSS feed,
// scrapes articles published in the last 24 hours, summarizes them with an
// LLM, converts the summary to speech and delivers the result to a
// Telegram chat, falling back to text when audio fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"newsbrief/internal/ai"
	"newsbrief/internal/config"
	"newsbrief/internal/extract"
	"newsbrief/internal/feed"
	"newsbrief/internal/httpx"
	"newsbrief/internal/logging"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/speech"
	"newsbrief/internal/telegram"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: newsbrief [RSS_FEED_URL]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()

	logFile, err := logging.Setup(cfg.LogDir)
	if err != nil {
		log.Printf("Logging to file unavailable, continuing with stdout only: %v", err)
	} else {
		defer logFile.Close()
	}

	feedURL := cfg.DefaultFeedURL
	if flag.NArg() > 0 {
		feedURL = flag.Arg(0)
		log.Printf("Using RSS feed URL from command line: %s", feedURL)
	} else if feedURL != "" {
		log.Printf("Using default RSS feed URL from environment: %s", feedURL)
	} else {
		log.Println("No RSS feed URL provided. Pass one as an argument or set DEFAULT_RSS_URL.")
		fmt.Fprintln(os.Stderr, "Usage: newsbrief [RSS_FEED_URL]")
		os.Exit(1)
	}

	// Credentials are checked before any network call is made.
	if err := cfg.Validate(); err != nil {
		log.Printf("CRITICAL: %v", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v. Check the environment and logs.\n", err)
		return
	}

	httpClient := httpx.New(rand.NewSource(time.Now().UnixNano()))

	bot, err := telegram.NewBot(cfg.BotToken, cfg.ChatID)
	if err != nil {
		log.Printf("CRITICAL: %v", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return
	}

	p := pipeline.New(
		feed.NewFetcher(httpClient),
		extract.NewExtractor(httpClient),
		ai.NewClient(cfg.DeepSeekAPIKey, httpClient.HTTPClient()),
		speech.NewClient(httpClient, cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID),
		bot,
	)

	p.Run(context.Background(), feedURL)
}
