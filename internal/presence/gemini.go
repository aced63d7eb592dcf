package presence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var ErrNoHeadline = errors.New("no headline generated")

// contentGenerator is the subset of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiWriter asks a Gemini model for a headline.
type GeminiWriter struct {
	client *genai.Client
	model  contentGenerator
}

func NewGeminiWriter(ctx context.Context, apiKey, modelName string) (*GeminiWriter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.9)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(64)

	return &GeminiWriter{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiWriter) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *GeminiWriter) WriteHeadline(ctx context.Context, name, location string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildHeadlinePrompt(name, location)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoHeadline
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: unexpected part type %T", ErrNoHeadline, resp.Candidates[0].Content.Parts[0])
	}

	headline := cleanHeadline(string(text))
	if headline == "" || HasPlaceholders(headline) {
		return "", ErrNoHeadline
	}
	return headline, nil
}

func buildHeadlinePrompt(name, location string) string {
	return fmt.Sprintf(`You are an SEO copywriter for local businesses. Write ONE catchy headline for the business "%s" located in "%s".

The output MUST be a single line of plain text under 90 characters, without quotes, markdown, hashtags or emojis.
Mention both the business name and the location.`, strings.TrimSpace(name), strings.TrimSpace(location))
}

func cleanHeadline(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(text, "\"'*# ")
	return strings.TrimSpace(text)
}

// FallbackWriter tries primary first and uses fallback whenever primary
// fails, so callers always get a headline.
type FallbackWriter struct {
	primary  HeadlineWriter
	fallback *HeadlineGenerator
	log      logrus.FieldLogger
}

func NewFallbackWriter(primary HeadlineWriter, fallback *HeadlineGenerator, log logrus.FieldLogger) *FallbackWriter {
	return &FallbackWriter{primary: primary, fallback: fallback, log: log}
}

func (f *FallbackWriter) WriteHeadline(ctx context.Context, name, location string) (string, error) {
	headline, err := f.primary.WriteHeadline(ctx, name, location)
	if err == nil {
		return headline, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	f.log.WithError(err).Warn("AI headline failed, using template")
	return f.fallback.Generate(name, location), nil
}
