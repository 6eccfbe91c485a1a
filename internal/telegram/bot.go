package telegram

import (
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// maxMessageLen leaves headroom under Telegram's 4096-char limit for
	// the chunk prefix.
	maxMessageLen = 4000

	maxCaptionLen = 1024

	// chunkPause keeps sequential sends under the provider's throttle.
	chunkPause = time.Second

	// uploadTimeout bounds the multipart audio upload, which is slower
	// than a plain API call but should not hang for the full general
	// request timeout.
	uploadTimeout = 60 * time.Second

	audioFileName = "daily_news_summary.mp3"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	// pause acts as time.Sleep, but can be mocked for testing.
	pause func(time.Duration)
}

// NewBot builds the delivery bot. The bot API library uses a single HTTP
// client for every call, so the stricter upload timeout bounds plain text
// sends as well; text messages are tiny and never approach it.
func NewBot(token string, chatID int64) (*Bot, error) {
	return NewBotWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewBotWithEndpoint is used by tests to point the bot at a fake API.
func NewBotWithEndpoint(token string, chatID int64, endpoint string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{
		Timeout: uploadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		api:    api,
		chatID: chatID,
		pause:  time.Sleep,
	}, nil
}

// SendText posts one text message to the configured chat. The library
// reports an error unless the API acknowledges with ok=true.
func (b *Bot) SendText(text string) error {
	log.Println("Sending text message to Telegram...")

	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send text message to Telegram: %v", err)
		return err
	}

	log.Println("Text message sent successfully to Telegram.")
	return nil
}

// SendLongText sends text that may exceed the message limit, splitting it
// into numbered "[Part N]" chunks with a pause between sends. The last
// send error wins; earlier chunks are not rolled back.
func (b *Bot) SendLongText(text string) error {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return b.SendText(text)
	}

	var lastErr error
	for i, part := 0, 1; i < len(runes); i, part = i+maxMessageLen, part+1 {
		end := i + maxMessageLen
		if end > len(runes) {
			end = len(runes)
		}
		chunk := fmt.Sprintf("[Part %d]\n%s", part, string(runes[i:end]))
		if err := b.SendText(chunk); err != nil {
			lastErr = err
		}
		b.pause(chunkPause)
	}
	return lastErr
}

// SendAudio uploads the audio bytes as a named file with a caption. The
// upload is a multipart POST performed by the bot API library with its
// own shorter timeout.
func (b *Bot) SendAudio(audio []byte, caption string) error {
	log.Println("Sending audio to Telegram...")

	msg := tgbotapi.NewAudio(b.chatID, tgbotapi.FileBytes{
		Name:  audioFileName,
		Bytes: audio,
	})
	msg.Caption = truncate(caption, maxCaptionLen)

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send audio to Telegram: %v", err)
		return err
	}

	log.Println("Audio sent successfully to Telegram.")
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
