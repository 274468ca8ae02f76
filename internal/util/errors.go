package util

import "errors"

var (
	ErrSessionNotFound     = errors.New("assessment session not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrModuleNotFound      = errors.New("module not found in course")
	ErrExtractionFailed    = errors.New("failed to extract structured content from model output")
	ErrUpstreamUnavailable = errors.New("generation endpoint unavailable")
	ErrModulesRequired     = errors.New("recommended modules are required")
)
