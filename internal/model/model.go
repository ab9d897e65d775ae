package model

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"arete/internal/spec"
)

// Completer is the completion collaborator: one prompt in, one text
// completion out. Implementations may fail and are treated as
// non-deterministic.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPDoer abstracts HTTP clients used by completers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CompleterFromEnv builds a completer using environment configuration.
func CompleterFromEnv(cfg spec.ModelConfig, client HTTPDoer) (Completer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	}
	if provider == "" {
		provider = "openrouter"
	}
	if provider != "openrouter" {
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	return NewOpenRouterCompleter(cfg, apiKey, "", client)
}
