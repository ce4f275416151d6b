package normalize

import (
	"context"
	"log/slog"

	"github.com/aimock/aimock-api/internal/domain"
)

// DefaultSalvageThreshold is the minimum number of objects object-by-object
// salvage must recover for its result to be accepted.
const DefaultSalvageThreshold = 3

// Stage identifies the recovery stage that produced a result.
type Stage int

const (
	StageDirect Stage = iota + 1
	StageExtracted
	StageRepaired
	StageSalvaged
	StageBalanced
)

// String returns the stage name used in logs and metric labels.
func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageExtracted:
		return "extracted"
	case StageRepaired:
		return "repaired"
	case StageSalvaged:
		return "salvaged"
	case StageBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// Result is a successful normalization.
type Result struct {
	Records []domain.QARecord
	Stage   Stage
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSalvageThreshold overrides DefaultSalvageThreshold. Values below 1 are ignored.
func WithSalvageThreshold(n int) Option {
	return func(nz *Normalizer) {
		if n >= 1 {
			nz.salvageThreshold = n
		}
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(nz *Normalizer) {
		if logger != nil {
			nz.logger = logger
		}
	}
}

// Normalizer turns raw model output into question/answer records.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	logger           *slog.Logger
	salvageThreshold int
}

// New creates a Normalizer with the given options applied.
func New(opts ...Option) *Normalizer {
	nz := &Normalizer{
		logger:           slog.Default(),
		salvageThreshold: DefaultSalvageThreshold,
	}
	for _, opt := range opts {
		opt(nz)
	}
	nz.logger = nz.logger.With(slog.String("component", "normalizer"))
	return nz
}

// SalvageThreshold returns the configured salvage threshold.
func (nz *Normalizer) SalvageThreshold() int {
	return nz.salvageThreshold
}

// Normalize returns the records recovered from raw, in their original order.
// It fails with a *ParseError when no stage recovers a valid record set.
func (nz *Normalizer) Normalize(ctx context.Context, raw string) ([]domain.QARecord, error) {
	res, err := nz.NormalizeResult(ctx, raw)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// NormalizeResult is Normalize but also reports which stage succeeded.
func (nz *Normalizer) NormalizeResult(ctx context.Context, raw string) (Result, error) {
	text := stripFences(raw)

	records, err := decodeRecords(text)
	if err == nil {
		return nz.done(ctx, StageDirect, records), nil
	}
	nz.logger.DebugContext(ctx, "direct parse failed", slog.String("error", err.Error()))

	candidate, ok := extractArray(text)
	if !ok {
		nz.logger.WarnContext(ctx, "no JSON array in model response",
			slog.Int("response_length", len(raw)))
		return Result{}, newParseError("failed to parse JSON response", ErrNoArray)
	}

	records, extractErr := decodeRecords(candidate)
	if extractErr == nil {
		return nz.done(ctx, StageExtracted, records), nil
	}
	nz.logger.DebugContext(ctx, "extracted array parse failed", slog.String("error", extractErr.Error()))

	repaired := repairSyntax(candidate)
	if records, err = decodeRecords(repaired); err == nil {
		return nz.done(ctx, StageRepaired, records), nil
	}
	nz.logger.DebugContext(ctx, "repaired array parse failed", slog.String("error", err.Error()))

	salvaged := salvageObjects(candidate)
	if len(salvaged) >= nz.salvageThreshold {
		return nz.done(ctx, StageSalvaged, salvaged), nil
	}
	nz.logger.DebugContext(ctx, "salvage recovered too few objects",
		slog.Int("recovered", len(salvaged)),
		slog.Int("threshold", nz.salvageThreshold))

	if records, err = decodeRecords(balanceBrackets(repaired)); err == nil {
		return nz.done(ctx, StageBalanced, records), nil
	}

	nz.logger.WarnContext(ctx, "model response could not be recovered",
		slog.String("error", extractErr.Error()),
		slog.Int("response_length", len(raw)))
	return Result{}, newParseError(
		"failed to parse JSON response: the model may have returned malformed JSON",
		extractErr,
	)
}

func (nz *Normalizer) done(ctx context.Context, stage Stage, records []domain.QARecord) Result {
	level := slog.LevelDebug
	if stage >= StageRepaired {
		level = slog.LevelInfo
	}
	nz.logger.Log(ctx, level, "model response normalized",
		slog.String("stage", stage.String()),
		slog.Int("records", len(records)))
	return Result{Records: records, Stage: stage}
}
