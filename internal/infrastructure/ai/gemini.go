// Package ai adapts the Gemini generation service to the pipeline's
// Generator port.
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// GeminiClient streams generations from the Gemini API. The client is built
// fully formed: transport, model id and rate limiter all arrive at
// construction time.
type GeminiClient struct {
	client  *genai.Client
	modelID string
	limiter ports.RateLimiter
	logger  ports.Logger
}

// NewGeminiClient dials the service with the given API key.
func NewGeminiClient(ctx context.Context, apiKey, modelID string, limiter ports.RateLimiter, logger ports.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key for the generation service")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("dial generation service: %w", err)
	}
	if modelID == "" {
		modelID = domain.DefaultModelID
	}
	return &GeminiClient{
		client:  client,
		modelID: modelID,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Close releases the underlying transport.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Stream implements ports.Generator. The limiter is admitted exactly once,
// at submission, not per chunk. The chunk channel is closed when the service
// signals completion; a transport failure is delivered as a terminal error
// chunk and everything streamed before it must be discarded by the caller.
func (c *GeminiClient) Stream(ctx context.Context, req domain.GenerationRequest) (<-chan domain.StreamChunk, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, err
	}

	parts := []genai.Part{genai.Text(prompt)}
	if req.HasAttachment() {
		mime := req.AttachmentMIME
		if mime == "" {
			mime = "application/octet-stream"
		}
		parts = append(parts, genai.Blob{MIMEType: mime, Data: req.Attachment})
	}

	c.limiter.Admit()
	c.logger.Info("generation request submitted", map[string]interface{}{
		"model": c.modelID,
		"mode":  string(req.Mode),
		"load":  c.limiter.CurrentLoad(),
	})

	model := c.client.GenerativeModel(c.modelID)
	iter := model.GenerateContentStream(ctx, parts...)

	out := make(chan domain.StreamChunk, 16)
	go func() {
		defer close(out)
		for {
			resp, err := iter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				out <- domain.StreamChunk{Err: fmt.Errorf("generation stream: %w", err)}
				return
			}
			if text := responseText(resp); text != "" {
				out <- domain.StreamChunk{Text: text}
			}
		}
	}()
	return out, nil
}

// responseText flattens the text parts of one streamed increment.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text
}

var _ ports.Generator = (*GeminiClient)(nil)
