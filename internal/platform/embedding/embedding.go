// Package embedding provides an optional Anthropic-backed
// scoring.EmbeddingProvider, used by the semantic scorer for its
// title-similarity bonus (up to 0.2) whenever both titles are set
// (modules/scoring/semantic.go). Without an API key configured,
// Provider is nil-safe: the semantic scorer falls back to its
// skill/synonym overlap score alone.
package embedding

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel   = anthropic.Model("claude-3-5-haiku-latest")
	requestTimeout = 3 * time.Second
	maxRetries     = 2
)

// Provider implements scoring.EmbeddingProvider by asking Claude to
// rate how similar two job titles are. It is deliberately not a true
// vector-embedding client: the titles involved are short and the
// judgement call ("is 'Lead DevOps Engineer' close to 'Senior SRE'")
// is easier to get right from a model than from cosine similarity
// over a general-purpose embedding space.
type Provider struct {
	client anthropic.Client
	model  anthropic.Model
}

// New builds a Provider. apiKey empty returns (nil, false): callers
// should pass a nil *Provider as scoring.Deps.Embedding, which the
// semantic scorer treats as "no embedding signal available".
func New(apiKey string) (*Provider, bool) {
	if apiKey == "" {
		return nil, false
	}
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(maxRetries),
	)
	return &Provider{client: client, model: defaultModel}, true
}

// TitleSimilarity implements scoring.EmbeddingProvider. It returns
// ok=false whenever the model call fails or the response can't be
// parsed as a score, so the caller can fall back rather than treat a
// transient API error as "titles are unrelated".
func (p *Provider) TitleSimilarity(ctx context.Context, a, b string) (float64, bool) {
	if p == nil {
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"You rate how similar two job titles are for the purpose of candidate-job matching. "+
			"Reply with ONLY a single number between 0.00 and 1.00, nothing else.\n\n"+
			"Title A: %q\nTitle B: %q", a, b,
	)

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 8,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return 0, false
	}

	return parseScore(msg)
}

func parseScore(msg *anthropic.Message) (float64, bool) {
	if msg == nil || len(msg.Content) == 0 {
		return 0, false
	}
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	text = strings.TrimSpace(text)
	score, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, true
}
