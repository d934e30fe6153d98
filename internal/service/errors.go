package service

import (
	"errors"
	"fmt"
)

// ErrInvalidPartnerOrAPIKey deliberately carries no detail about which half of
// the credential pair failed, so callers cannot probe for valid partner ids.
var ErrInvalidPartnerOrAPIKey = errors.New("invalid partner or api key")

// UnknownAttributeError rejects a mapped attribute the registrant schema does
// not recognize. It is raised before any other validation runs.
type UnknownAttributeError struct {
	Attr string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute: %s", e.Attr)
}

// UnsupportedLanguageError rejects a locale outside the supported set. It takes
// precedence over every field-level validation failure.
type UnsupportedLanguageError struct {
	Locale string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Locale)
}

// SurveyQuestionError reports a survey answer supplied without its question.
type SurveyQuestionError struct {
	Slot int
}

func (e *SurveyQuestionError) Error() string {
	return fmt.Sprintf("Question %d required when Answer %d provided", e.Slot, e.Slot)
}

// ValidationError reports the first failing field only, under its
// partner-facing name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
