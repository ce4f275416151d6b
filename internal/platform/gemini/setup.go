package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/normalize"
)

// Observer receives gate outcomes and normalization stages.
// *metrics.Metrics implements it.
type Observer interface {
	generation.Observer
	NormalizationObserver
}

// NewGatedGenerator builds a ChatClient for llm, puts it behind a
// generation.Gate and wraps the gate in a Generator tuned by interview.
// observer may be nil.
func NewGatedGenerator(
	ctx context.Context,
	logger *slog.Logger,
	llm config.LLMConfig,
	interview config.InterviewConfig,
	observer Observer,
) (*Generator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	chat, err := NewChatClient(ctx, logger, llm)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	gateOpts := []generation.GateOption{
		generation.WithMinInterval(llm.MinRequestInterval()),
		generation.WithRequestTimeout(llm.RequestTimeout()),
	}
	genOpts := []Option{WithQuestionCount(interview.QuestionCount)}
	if observer != nil {
		gateOpts = append(gateOpts, generation.WithObserver(observer))
		genOpts = append(genOpts, WithNormalizationObserver(observer))
	}

	gate := generation.NewGate(chat, logger, gateOpts...)
	normalizer := normalize.New(
		normalize.WithLogger(logger),
		normalize.WithSalvageThreshold(interview.SalvageThreshold))

	generator, err := NewGenerator(logger, gate, normalizer, genOpts...)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "LLM generator initialized",
		"model", llm.ModelName,
		"min_request_interval", gate.MinInterval().String(),
		"question_count", generator.questionCount)
	return generator, nil
}
