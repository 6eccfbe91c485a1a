package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Generation parameters are fixed: a bounded, moderately creative single
// completion with no penalty adjustments.
const (
	model       = "deepseek-chat"
	maxTokens   = 2048
	temperature = 0.7
)

const defaultBaseURL = "https://api.deepseek.com"

// emptyCorpusPlaceholder keeps the request well-formed when nothing could
// be scraped; the persona instructs the model to say so.
const emptyCorpusPlaceholder = "No articles were found or text could not be extracted."

const systemPrompt = `You are a news summarizer with a left-wing perspective.
Your goal is to create a concise and engaging narrative of "what's happened in the last 24 hours" based on the provided article texts.
Focus particularly on news related to:
- LGBT issues and rights
- Social justice movements and inequalities
- Developments in Artificial Intelligence (AI), including ethics and societal impact
- Computer security, cybersecurity threats, and data privacy
Present the information as a coherent news update, not just a list of summaries.
Highlight key events and their potential implications from your stated perspective.
Ensure the tone is informative yet critical where appropriate, aligning with a progressive viewpoint.
If there are no relevant articles for these specific topics, summarize the most important general news from the provided texts with this perspective in mind.
If no text is provided, state that no news could be processed.
`

var ErrNoNarrative = errors.New("no narrative generated")

type Client struct {
	oai openai.Client
}

// NewClient builds a summarizer client against the DeepSeek
// OpenAI-compatible endpoint. The HTTP client is shared with the rest of
// the pipeline so the identity and timeout policy apply here too.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, httpClient)
}

func NewClientWithBaseURL(apiKey, baseURL string, httpClient *http.Client) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &Client{oai: openai.NewClient(opts...)}
}

// Narrative sends the corpus to the summarizer and returns the generated
// narrative. An empty corpus still produces a well-formed request via a
// placeholder sentence. Failure is terminal; there is no retry.
func (c *Client) Narrative(ctx context.Context, corpus string) (string, error) {
	if corpus == "" {
		log.Println("Text corpus is empty. LLM will be prompted accordingly.")
		corpus = emptyCorpusPlaceholder
	}

	log.Println("Sending text to DeepSeek for narrative generation...")

	resp, err := c.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(corpus),
		},
		Temperature:      openai.Float(temperature),
		MaxTokens:        openai.Int(maxTokens),
		FrequencyPenalty: openai.Float(0),
		PresencePenalty:  openai.Float(0),
	})
	if err != nil {
		log.Printf("Failed to get response from DeepSeek API: %v", err)
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("DeepSeek API response error or empty: %s", resp.RawJSON())
		return "", ErrNoNarrative
	}

	narrative := resp.Choices[0].Message.Content
	log.Printf("Narrative received from DeepSeek (length: %d)", len(narrative))
	return narrative, nil
}
