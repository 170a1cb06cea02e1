package openai

import (
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client. baseURL and httpClient are optional and
// exist mainly so tests can point the client at a local server.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(cfg)
}
