package guesslang

import "fmt"

// ModelError indicates language model data that could not be parsed.
// The classifier treats such a model as absent.
type ModelError struct {
	Code    string // Language code the model belongs to
	Message string
	Cause   error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model error (%s): %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("model error (%s): %s", e.Code, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a result cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content extraction failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// DataError indicates a bundled table that could not be decoded.
type DataError struct {
	Table string // Name of the table, e.g. "blocks.yaml"
	Cause error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error (%s): %v", e.Table, e.Cause)
}

func (e *DataError) Unwrap() error {
	return e.Cause
}
