// Package assistant answers questions about a user's journal with a Gemini
// model.
//
// The assistant never fails from the caller's point of view: a missing API
// key or a model error turns into an Arabic message telling the user what to
// do next.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/sakif/yawmiyat/internal/model"
)

const (
	// DefaultModel is used when the config names none.
	DefaultModel = "gemini-2.0-flash"

	MissingKeyReply = "يرجى إدخال Gemini API Key في الإعدادات لاستخدام المساعد الذكي."
	EmptyReply      = "عذراً، لم أتمكن من معالجة طلبك."
	ErrorReply      = "عذراً، حدث خطأ في الاتصال بالمساعد الذكي. تأكد من صحة API Key وحاول مرة أخرى."
)

// Generator produces a completion for a prompt using the given API key.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API. Keys are per user, so a client is
// built for every call.
type GeminiGenerator struct {
	model string
}

func NewGeminiGenerator(model string) *GeminiGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: 1024,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return resp.Text(), nil
}

// Assistant turns a question plus journal context into a reply.
type Assistant struct {
	gen        Generator
	defaultKey string
	logger     *slog.Logger
}

// New returns an Assistant. defaultKey is used for users who have not set
// their own key in settings; it may be empty.
func New(gen Generator, defaultKey string, logger *slog.Logger) *Assistant {
	return &Assistant{gen: gen, defaultKey: defaultKey, logger: logger}
}

// Ask returns the reply to question. entries are newest first.
func (a *Assistant) Ask(ctx context.Context, userKey, question string, entries []model.Entry, history []Message) string {
	key := userKey
	if key == "" {
		key = a.defaultKey
	}
	if key == "" {
		return MissingKeyReply
	}

	reply, err := a.gen.Generate(ctx, key, BuildPrompt(question, entries, history))
	if err != nil {
		a.logger.Error("assistant request failed", slog.String("error", err.Error()))
		return ErrorReply
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReply
	}
	return reply
}
