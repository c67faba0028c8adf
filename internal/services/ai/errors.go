package ai

import "errors"

var (
	ErrAINotConfigured       = errors.New("AI summary is not configured")              // 503
	ErrAIProviderUnavailable = errors.New("AI provider is currently unavailable")      // 502
	ErrSafetyViolation       = errors.New("generated content violated safety policies") // 400
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")                       // 429
)
