// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Sources are applied in increasing precedence: built-in defaults, an
// optional config.yaml, then environment variables prefixed with AIMOCK_
// (for example AIMOCK_LLM_GEMINI_API_KEY for llm.gemini_api_key).
package config
