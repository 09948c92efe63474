package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You summarize YouTube video transcripts. Respond in Markdown with exactly these four sections, in this order and under these exact headings:

## Overview
Two or three sentences describing what the video is about.

## Key Points
A bullet list of the main points made in the video.

## Key Takeaways
A bullet list of what the viewer should remember.

## Topics Covered
A short comma-separated list of topics.

Do not add any other sections or introductory text.`

// ErrNoAPIKey is returned when the client was constructed without credentials.
var ErrNoAPIKey = errors.New("summarizer: missing API key")

// OpenAIConfig holds configuration for the OpenAI summarizer.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// OpenAI implements Summarizer over the chat-completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// Compile-time verification that OpenAI implements Summarizer.
var _ Summarizer = (*OpenAI)(nil)

// NewOpenAI creates a new OpenAI summarizer. A missing API key is not an
// error here: every Summarize call will fail and callers degrade to the
// fallback summary, which keeps the pipeline alive without credentials.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	var client *openai.Client
	if cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}
	return &OpenAI{
		client: client,
		model:  cfg.Model,
	}
}

// Summarize submits the truncated text for summarization. Single attempt, no
// retries.
func (o *OpenAI) Summarize(ctx context.Context, title, text string) (string, error) {
	if o.client == nil {
		return "", ErrNoAPIKey
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Title: %s\n\nTranscript:\n%s", title, Truncate(text)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("summarizer: empty completion response")
	}

	summary := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	if summary == "" {
		return "", errors.New("summarizer: blank completion content")
	}

	return summary, nil
}
