package embedding

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyAPIKey_ReturnsDisabled(t *testing.T) {
	p, ok := New("")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestTitleSimilarity_NilProvider_ReturnsNoSignal(t *testing.T) {
	var p *Provider
	score, ok := p.TitleSimilarity(context.Background(), "Lead DevOps Engineer", "Senior SRE")
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		msg     *anthropic.Message
		wantOK  bool
		wantVal float64
	}{
		{
			name:   "nil message",
			msg:    nil,
			wantOK: false,
		},
		{
			name:   "empty content",
			msg:    &anthropic.Message{},
			wantOK: false,
		},
		{
			name: "valid score",
			msg: &anthropic.Message{
				Content: []anthropic.ContentBlockUnion{
					{Type: "text", Text: "0.82"},
				},
			},
			wantOK:  true,
			wantVal: 0.82,
		},
		{
			name: "clamps above one",
			msg: &anthropic.Message{
				Content: []anthropic.ContentBlockUnion{
					{Type: "text", Text: "1.5"},
				},
			},
			wantOK:  true,
			wantVal: 1.0,
		},
		{
			name: "unparsable text",
			msg: &anthropic.Message{
				Content: []anthropic.ContentBlockUnion{
					{Type: "text", Text: "pretty similar"},
				},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseScore(tt.msg)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantVal, got, 1e-9)
			}
		})
	}
}
