package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/kaptinlin/jsonrepair"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	maxMarkdownBytes = 12000
	maxOutputTokens  = 512
)

// Client produces a single completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type sdkClient struct {
	client sdk.Client
	model  string
}

// NewClient creates a completion client backed by the official SDK.
func NewClient(apiKey string) Client {
	return &sdkClient{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  defaultModel,
	}
}

func (c *sdkClient) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: maxOutputTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: create message: %w", err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}

// Assessment holds optional qualitative sub-scores. A nil field means the
// model did not produce a usable value for it.
type Assessment struct {
	PainPointResonance *int `json:"pain_point_resonance"`
	CTAWording         *int `json:"cta_wording"`
	OnPageSEO          *int `json:"on_page_seo"`
}

// Empty reports whether no sub-score was produced.
func (a Assessment) Empty() bool {
	return a.PainPointResonance == nil && a.CTAWording == nil && a.OnPageSEO == nil
}

// Scorer asks a language model to rate homepage copy. All failures are
// soft: callers receive an empty Assessment and decide how to proceed.
type Scorer struct {
	client Client
}

func NewScorer(client Client) *Scorer {
	return &Scorer{client: client}
}

const assessPrompt = `You are rating the homepage of a local service business.
Rate each dimension from 0 to 100.

- pain_point_resonance: how directly the copy speaks to the customer's problem
- cta_wording: how clear and compelling the calls to action are
- on_page_seo: how well the copy targets local search intent

Respond with only a JSON object:
{"pain_point_resonance": <int>, "cta_wording": <int>, "on_page_seo": <int>}

Homepage content (markdown):

`

// Assess converts homepage HTML to markdown, prompts the model, and
// parses the sub-scores. Out-of-range or unparsable values are dropped
// rather than defaulted.
func (s *Scorer) Assess(ctx context.Context, homepageHTML string) (Assessment, error) {
	if s == nil || s.client == nil {
		return Assessment{}, nil
	}

	md, err := htmltomarkdown.ConvertString(homepageHTML)
	if err != nil {
		return Assessment{}, fmt.Errorf("llm: convert homepage: %w", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return Assessment{}, nil
	}
	if len(md) > maxMarkdownBytes {
		md = md[:maxMarkdownBytes]
	}

	raw, err := s.client.Complete(ctx, assessPrompt+md)
	if err != nil {
		return Assessment{}, err
	}

	return parseAssessment(raw), nil
}

// parseAssessment tolerates malformed model output. It repairs the JSON
// when possible and keeps only values inside 0..100.
func parseAssessment(raw string) Assessment {
	body := extractJSON(raw)
	if body == "" {
		return Assessment{}
	}

	var parsed struct {
		PainPointResonance *float64 `json:"pain_point_resonance"`
		CTAWording         *float64 `json:"cta_wording"`
		OnPageSEO          *float64 `json:"on_page_seo"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(body)
		if rerr != nil {
			return Assessment{}
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return Assessment{}
		}
	}

	return Assessment{
		PainPointResonance: boundedScore(parsed.PainPointResonance),
		CTAWording:         boundedScore(parsed.CTAWording),
		OnPageSEO:          boundedScore(parsed.OnPageSEO),
	}
}

// extractJSON pulls the first brace-delimited object out of model output
// that may be wrapped in prose or code fences.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func boundedScore(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	if n < 0 || n > 100 {
		return nil
	}
	return &n
}
