// Package suggest proposes a category for an unlabeled record using Gemini.
package suggest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// generator is the part of genai.Models the suggester uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model to pick one of the wallet's categories.
type Gemini struct {
	models generator
	model  string
}

// NewGemini creates a suggester backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("NewGemini: create genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models generator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model}
}

// Suggest returns the category the model picks for rec, or "" when the answer
// is not exactly one of options.
func (g *Gemini) Suggest(ctx context.Context, rec domain.Record, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(rec, options)), config)
	if err != nil {
		return "", fmt.Errorf("Suggest: generate content: %w", err)
	}

	answer := resp.Text()
	match := matchOption(answer, options)
	log := logger.FromContext(ctx)
	log.Debug().
		Str("model", g.model).
		Str("answer", answer).
		Str("suggestion", match).
		Msg("Category suggestion received")
	return match, nil
}

func buildPrompt(rec domain.Record, options []string) string {
	var b strings.Builder
	b.WriteString("You categorize personal bank transactions.\n\n")
	b.WriteString("Transaction:\n")
	b.WriteString("- date: " + rec.Date + "\n")
	b.WriteString("- amount: " + strconv.FormatFloat(rec.Amount, 'f', -1, 64) + " (negative for money OUT)\n")
	b.WriteString("- description: " + rec.Description + "\n\n")

	b.WriteString("Use ONLY the following categories:\n")
	for _, o := range options {
		b.WriteString("  - " + o + "\n")
	}

	b.WriteString("\nRules:\n")
	b.WriteString("1. Answer with EXACTLY one category name from the list above (case-sensitive).\n")
	b.WriteString("2. Return ONLY the name, no quotes, no punctuation, no extra text.\n")
	return b.String()
}

// matchOption maps a model answer back to an option. An exact match wins,
// then a case-insensitive one.
func matchOption(answer string, options []string) string {
	a := strings.Trim(strings.TrimSpace(answer), "\"'`.")
	if a == "" {
		return ""
	}
	for _, o := range options {
		if o == a {
			return o
		}
	}
	for _, o := range options {
		if strings.EqualFold(o, a) {
			return o
		}
	}
	return ""
}
