package gemini

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/normalize"
)

// DefaultQuestionCount is how many questions are requested per interview.
const DefaultQuestionCount = 5

// stageFailed is reported to the observer when no normalization stage succeeds.
const stageFailed = "failed"

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// questionPromptData is the data passed to the questions template.
type questionPromptData struct {
	Count       int
	Numbers     []int
	Position    string
	Description string
	Experience  int
	TechStack   string
}

// NormalizationObserver is told which normalization stage handled each
// question response ("failed" when none did).
type NormalizationObserver interface {
	ObserveNormalization(stage string)
}

// Option configures a Generator.
type Option func(*Generator)

// WithQuestionCount overrides DefaultQuestionCount. Values below 1 are ignored.
func WithQuestionCount(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.questionCount = n
		}
	}
}

// WithNormalizationObserver registers an observer for normalization stages.
func WithNormalizationObserver(o NormalizationObserver) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

// Generator implements generation.Generator on top of a generation.Chat.
type Generator struct {
	logger        *slog.Logger
	chat          generation.Chat
	normalizer    *normalize.Normalizer
	questionCount int
	observer      NormalizationObserver
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator that sends prompts through chat and
// recovers question records with normalizer.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - chat: The chat to send prompts through, normally a *generation.Gate
//   - normalizer: The normalizer for question responses; nil uses defaults
//   - opts: Optional settings
//
// Returns:
//   - A Generator or an error if a required dependency is missing
func NewGenerator(
	logger *slog.Logger,
	chat generation.Chat,
	normalizer *normalize.Normalizer,
	opts ...Option,
) (*Generator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if chat == nil {
		return nil, ErrNilChat
	}
	if normalizer == nil {
		normalizer = normalize.New(normalize.WithLogger(logger))
	}

	g := &Generator{
		logger:        logger.With("component", "gemini_generator"),
		chat:          chat,
		normalizer:    normalizer,
		questionCount: DefaultQuestionCount,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateQuestions asks the model for interview questions about input and
// returns the recovered records in generation order.
//
// Chat failures are returned unchanged so classified gate errors reach the
// caller intact. Unrecoverable replies yield an error matching both
// generation.ErrInvalidResponse and normalize.ErrParse.
func (g *Generator) GenerateQuestions(ctx context.Context, input domain.InterviewInput) ([]domain.QARecord, error) {
	prompt, err := g.questionPrompt(input)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Generating interview questions",
		"position_length", len(input.Position),
		"question_count", g.questionCount)

	text, err := g.chat.SendMessage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	res, err := g.normalizer.NormalizeResult(ctx, text)
	if err != nil {
		g.observe(stageFailed)
		g.logger.ErrorContext(ctx, "Failed to recover questions from model response",
			"error", err,
			"response_length", len(text))
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}
	g.observe(res.Stage.String())

	g.logger.InfoContext(ctx, "Generated interview questions",
		"records", len(res.Records),
		"stage", res.Stage.String())
	return res.Records, nil
}

// GenerateFeedback asks the model to rate an answer. A reply that cannot be
// decoded or is out of range yields an error wrapping
// generation.ErrInvalidResponse.
func (g *Generator) GenerateFeedback(ctx context.Context, req generation.FeedbackRequest) (*domain.Feedback, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.UserAnswer) == "" {
		return nil, fmt.Errorf("%w: question and answer are required", generation.ErrEmptyPrompt)
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, "feedback.tmpl", req); err != nil {
		return nil, fmt.Errorf("failed to execute feedback template: %w", err)
	}

	text, err := g.chat.SendMessage(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	var feedback domain.Feedback
	if err := normalize.DecodeObject(text, &feedback); err != nil {
		g.logger.ErrorContext(ctx, "Failed to decode feedback from model response",
			"error", err,
			"response_length", len(text))
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}
	if err := feedback.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}

	g.logger.DebugContext(ctx, "Generated feedback", "rating", feedback.Rating)
	return &feedback, nil
}

func (g *Generator) questionPrompt(input domain.InterviewInput) (string, error) {
	if strings.TrimSpace(input.Position) == "" || strings.TrimSpace(input.TechStack) == "" {
		return "", fmt.Errorf("%w: position and tech stack are required", generation.ErrEmptyPrompt)
	}

	numbers := make([]int, g.questionCount)
	for i := range numbers {
		numbers[i] = i + 1
	}
	data := questionPromptData{
		Count:       g.questionCount,
		Numbers:     numbers,
		Position:    strings.TrimSpace(input.Position),
		Description: strings.TrimSpace(input.Description),
		Experience:  input.Experience,
		TechStack:   strings.TrimSpace(input.TechStack),
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, "questions.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute question template: %w", err)
	}
	return buf.String(), nil
}

func (g *Generator) observe(stage string) {
	if g.observer != nil {
		g.observer.ObserveNormalization(stage)
	}
}
