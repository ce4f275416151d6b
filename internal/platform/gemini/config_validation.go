package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/generation"
)

// validateConfig checks the settings the chat client cannot work without.
// Out-of-range sampling values are reported but left to the API to reject.
//
// Parameters:
//   - ctx: Context for logging and cancellation
//   - logger: Logger for recording validation results
//   - cfg: The LLM configuration to validate
//
// Returns:
//   - An error wrapping generation.ErrInvalidConfig if validation fails, nil otherwise
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing Gemini model name")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: max output tokens must be positive, got %d",
			generation.ErrInvalidConfig, cfg.MaxOutputTokens)
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		logger.WarnContext(ctx, "Temperature outside the documented range",
			"temperature", cfg.Temperature)
	}

	return nil
}
