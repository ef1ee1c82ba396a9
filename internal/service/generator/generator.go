// Package generator implements the quote and image-prompt generation flows:
// request validation, multi-modal prompt assembly, the upstream
// chat-completion call, output normalization, and the quote fallback.
package generator

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
)

// QuoteRequest is the input of the quote generator. Text may be empty when
// files are present.
type QuoteRequest struct {
	Text         string    `json:"text"`
	Files        []FileRef `json:"files"`
	Directions   string    `json:"directions"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"systemPrompt"`
}

// PromptRequest is the input of the image-prompt generator. Text is
// required; files are not an alternate input for this variant.
type PromptRequest struct {
	Text         string `json:"text"`
	Directions   string `json:"directions"`
	Model        string `json:"model"`
	SystemPrompt string `json:"systemPrompt"`
}

// Service drives both generation flows against one ChatClient.
type Service struct {
	chat       ChatClient
	httpClient *http.Client
	logger     *log.Logger
}

// NewService builds a generator service. httpClient is used to fetch
// inline-text attachments and may be nil; logger may be nil.
func NewService(chat ChatClient, httpClient *http.Client, logger *log.Logger) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{chat: chat, httpClient: httpClient, logger: logger}
}

// GenerateQuote runs the quote flow and always produces a quote: any
// failure (invalid input, missing credential, upstream error) degrades to
// the fixed fallback sentence. Exactly one upstream attempt is made.
func (s *Service) GenerateQuote(ctx context.Context, req QuoteRequest) string {
	quote, err := s.generateQuote(ctx, req)
	if err != nil {
		s.logger.Warn("quote generation failed, using fallback", "err", err)
		return FallbackQuote
	}
	return quote
}

func (s *Service) generateQuote(ctx context.Context, req QuoteRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Files) == 0 {
		return "", ErrInvalidInput
	}
	if s.chat == nil {
		return "", ErrUpstreamUnavailable
	}

	p := presets[KindQuote]
	system := s.systemContent(p, req.SystemPrompt, req.Directions)

	var parts []openai.ChatCompletionContentPartUnionParam
	if text != "" {
		parts = append(parts, openai.TextContentPart(p.userPrefix+text))
	}
	for _, f := range req.Files {
		parts = append(parts, s.filePart(ctx, f))
	}
	if len(parts) == 0 {
		parts = append(parts, openai.TextContentPart(p.placeholder))
	}

	raw, err := s.complete(ctx, p, req.Model, system, parts)
	if err != nil {
		return "", err
	}
	quote := NormalizeQuote(strings.TrimSpace(raw))
	if quote == "" {
		// Model ignored the output format entirely.
		return FallbackQuote, nil
	}
	return quote, nil
}

// GeneratePrompt runs the image-prompt flow. Unlike the quote flow it
// surfaces failures to the caller.
func (s *Service) GeneratePrompt(ctx context.Context, req PromptRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", ErrInvalidInput
	}
	if s.chat == nil {
		return "", ErrUpstreamUnavailable
	}

	p := presets[KindImage]
	system := s.systemContent(p, req.SystemPrompt, req.Directions)
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(p.userPrefix + text),
	}

	raw, err := s.complete(ctx, p, req.Model, system, parts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// systemContent resolves the effective system prompt: override or built-in
// default, with directions appended as a trailing instruction paragraph.
// Directions are append-only and cannot replace the core output rules.
func (s *Service) systemContent(p preset, override, directions string) string {
	system := override
	if system == "" {
		system = p.systemPrompt
	}
	if d := strings.TrimSpace(directions); d != "" {
		system += "\n\n" + p.directionsLabel + d
	}
	return system
}

func (s *Service) complete(ctx context.Context, p preset, model, system string, parts []openai.ChatCompletionContentPartUnionParam) (string, error) {
	if model == "" {
		model = p.model
	}
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(parts),
		},
	}
	applyModelParams(&params, model, p.tuning)
	return s.chat.Complete(ctx, params)
}
