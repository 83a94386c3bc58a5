package service

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrAnalysisNotFound = errors.New("analysis not found for message")
	ErrInvalidUsername  = errors.New("username is required")
	ErrUsernameTaken    = errors.New("username already registered")
	ErrEmptyMessage     = errors.New("message text is required")
	ErrLLMDisabled      = errors.New("LLM provider not configured")
)
