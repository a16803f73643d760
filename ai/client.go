// ABOUTME: OpenAI chat, streaming and image client
// ABOUTME: An empty API key puts the client in testing mode with canned answers

package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultTemperature = 0.6
	ImageModel         = openai.CreateImageModelDallE3
)

var (
	ErrNotConfigured = errors.New("OpenAI client not configured")
	ErrEmptyResponse = errors.New("no response from OpenAI")
)

const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

type Message struct {
	Role    string
	Content string
}

type Options struct {
	JSON        bool
	Temperature float32
}

type Client struct {
	api    *openai.Client
	model  string
	logger *log.Logger
	intn   func(int) int
}

// NewClient builds a client. baseURL overrides the API endpoint and may be empty.
func NewClient(apiKey, model, baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{model: model, logger: logger.WithPrefix("ai"), intn: rand.Intn}
	if c.model == "" {
		c.model = openai.GPT4Turbo
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		c.api = openai.NewClientWithConfig(cfg)
	}
	return c
}

// Configured reports whether requests go to the API rather than fallbacks.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

func (c *Client) Model() string { return c.model }

func toOpenAI(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

func (c *Client) request(msgs []Message, temperature float32) openai.ChatCompletionRequest {
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	return openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAI(msgs),
		Temperature: temperature,
	}
}

// Complete runs a single chat completion and returns the first choice.
func (c *Client) Complete(ctx context.Context, msgs []Message, opts Options) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	req := c.request(msgs, opts.Temperature)
	if opts.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream runs a streaming completion, calling onChunk for every non-empty
// delta. It returns the concatenated text, even when the stream breaks.
func (c *Client) Stream(ctx context.Context, msgs []Message, temperature float32, onChunk func(string) error) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	req := c.request(msgs, temperature)
	req.Stream = true

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("open stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			c.logger.Warn("stream interrupted", "err", err)
			return full.String(), fmt.Errorf("stream: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if onChunk != nil {
			if err := onChunk(delta); err != nil {
				return full.String(), err
			}
		}
	}
}

type PropertyDetails struct {
	Title       string   `json:"title,omitempty"`
	Address     string   `json:"address,omitempty"`
	Bedrooms    float64  `json:"bedrooms,omitempty"`
	Bathrooms   float64  `json:"bathrooms,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Price       string   `json:"price,omitempty"`
}

// ImagePrompt describes the property for the image model.
func ImagePrompt(p PropertyDetails) string {
	title := p.Title
	if title == "" {
		title = "Luxury real estate property"
	}
	parts := []string{title}
	if p.Address != "" {
		parts = append(parts, "Located at "+p.Address)
	}
	if p.Bedrooms > 0 {
		parts = append(parts, fmt.Sprintf("%g bedrooms", p.Bedrooms))
	}
	if p.Bathrooms > 0 {
		parts = append(parts, fmt.Sprintf("%g bathrooms", p.Bathrooms))
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.Highlights) > 0 {
		h := p.Highlights
		if len(h) > 3 {
			h = h[:3]
		}
		parts = append(parts, "Features: "+strings.Join(h, ", "))
	}
	return "Professional real estate photography of a luxury property: " + strings.Join(parts, ". ") +
		". Architectural photography, natural lighting, modern design, elegant interior, high-end finishes, " +
		"wide angle shot, magazine quality, 4K resolution"
}

// GenerateImage returns an image URL. Without a key it picks a sample photo.
func (c *Client) GenerateImage(ctx context.Context, p PropertyDetails) (string, error) {
	if !c.Configured() {
		return SampleImages[c.intn(len(SampleImages))], nil
	}
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         ImagePrompt(p),
		Model:          ImageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("failed to generate image")
	}
	return resp.Data[0].URL, nil
}
