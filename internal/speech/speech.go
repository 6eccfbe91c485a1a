package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"newsbrief/internal/httpx"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"

// Fixed synthesis parameters; the voice itself comes from configuration.
const synthesisModel = "eleven_multilingual_v2"

var ErrNoAudio = errors.New("no audio produced")

type request struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type Client struct {
	http    *httpx.Client
	apiKey  string
	voiceID string
	baseURL string
}

func NewClient(client *httpx.Client, apiKey, voiceID string) *Client {
	return &Client{
		http:    client,
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: defaultBaseURL,
	}
}

// NewClientWithBaseURL is used by tests to point at a fake endpoint.
func NewClientWithBaseURL(client *httpx.Client, apiKey, voiceID, baseURL string) *Client {
	c := NewClient(client, apiKey, voiceID)
	c.baseURL = baseURL
	return c
}

// Synthesize converts the narrative into encoded audio bytes. Empty input
// is rejected without a call. Long text is passed through as-is; the
// service's own limits are not enforced here.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		log.Println("Empty text provided for text-to-speech.")
		return nil, ErrNoAudio
	}

	log.Println("Sending text to ElevenLabs for speech synthesis...")

	payload, err := json.Marshal(request{
		Text:    text,
		ModelID: synthesisModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":       "audio/mpeg",
		"Content-Type": "application/json",
		"xi-api-key":   c.apiKey,
	}

	audio, err := c.http.Post(ctx, fmt.Sprintf("%s/%s", c.baseURL, c.voiceID), headers, bytes.NewReader(payload))
	if err != nil {
		log.Printf("Failed to get response from ElevenLabs API: %v", err)
		return nil, err
	}

	if len(audio) == 0 {
		log.Println("ElevenLabs returned an empty body.")
		return nil, ErrNoAudio
	}

	log.Println("MP3 audio received from ElevenLabs.")
	return audio, nil
}
