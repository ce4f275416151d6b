package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/generation"
)

// responseMIMEType asks the model for a JSON body.
const responseMIMEType = "application/json"

// safetyCategories are blocked at medium probability and above.
var safetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// ChatClient implements generation.Chat using the Gemini chat API.
type ChatClient struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// genConfig holds sampling parameters and safety settings
	genConfig *genai.GenerateContentConfig
}

// NewChatClient creates a ChatClient from the LLM configuration.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and sampling settings
//
// Returns:
//   - A ready ChatClient or an error wrapping generation.ErrInvalidConfig
func NewChatClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*ChatClient, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	logger = logger.With("component", "gemini_chat")

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini chat client initialized",
		"model", cfg.ModelName,
		"custom_base_url", cfg.BaseURL != "")

	return &ChatClient{
		logger:    logger,
		client:    client,
		model:     cfg.ModelName,
		genConfig: generateContentConfig(cfg),
	}, nil
}

// generateContentConfig builds the per-request model configuration.
func generateContentConfig(cfg config.LLMConfig) *genai.GenerateContentConfig {
	safety := make([]*genai.SafetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}

	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(cfg.Temperature),
		TopP:             genai.Ptr(cfg.TopP),
		TopK:             genai.Ptr(cfg.TopK),
		MaxOutputTokens:  cfg.MaxOutputTokens,
		ResponseMIMEType: responseMIMEType,
		SafetySettings:   safety,
	}
}

// SendMessage sends prompt as the first turn of a fresh chat and returns the
// reply text, or "" when the model returned no text.
//
// SDK errors carrying an HTTP status are returned as
// *generation.UpstreamError. A reply stopped by safety filters yields an
// error wrapping generation.ErrContentBlocked.
func (c *ChatClient) SendMessage(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	chat, err := c.client.Chats.Create(ctx, c.model, c.genConfig, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	c.logger.DebugContext(ctx, "Sending prompt to Gemini",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", mapError(err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		c.logger.WarnContext(ctx, "Prompt blocked by Gemini",
			"block_reason", string(resp.PromptFeedback.BlockReason))
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		c.logger.WarnContext(ctx, "Response blocked by safety filters")
		return "", fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	c.logger.DebugContext(ctx, "Received Gemini response",
		"response_length", len(text))
	return text, nil
}

// mapError converts a genai.APIError into a *generation.UpstreamError.
// Other errors, including context errors, are returned unchanged.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Status
		}
		return &generation.UpstreamError{Status: apiErr.Code, Message: msg, Err: err}
	}
	return err
}
