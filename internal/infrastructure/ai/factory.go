package ai

import (
	"context"
	"fmt"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// NewFromConfig builds the generation client from configuration, resolving
// the API key from the configured environment variable.
func NewFromConfig(ctx context.Context, cfg domain.Config, limiter ports.RateLimiter, logger ports.Logger) (*GeminiClient, error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key: set %s", cfg.APIKeyEnvVar())
	}
	return NewGeminiClient(ctx, apiKey, cfg.ModelID(), limiter, logger)
}
