package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateNotFound   = errors.New("prompt template not found")
	ErrUpstreamCallFailed = errors.New("upstream model call failed")
	ErrEmptyModelResponse = errors.New("model returned an empty response")
	ErrUnparsableResponse = errors.New("no parsable JSON in model response")
	ErrStorageWriteFailed = errors.New("staging upload to object storage failed")
	ErrOcrServiceFailed   = errors.New("ocr service call failed")
)

// MissingContextKeyError indicates a prompt template references a key the
// render context did not supply.
type MissingContextKeyError struct {
	Key string
}

func (e *MissingContextKeyError) Error() string {
	return fmt.Sprintf("prompt context missing key %q", e.Key)
}

// InvalidFieldTypeError indicates a field in the model output could not be
// coerced to its schema type.
type InvalidFieldTypeError struct {
	Field string
	Value any
}

func (e *InvalidFieldTypeError) Error() string {
	return fmt.Sprintf("field %q has invalid value %v", e.Field, e.Value)
}

// InvalidDateError indicates a date value matched none of the accepted formats.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("unparsable date %q", e.Value)
}

// MissingRequiredFieldError indicates a required field is absent from the
// model output.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// UnsupportedModelError indicates a model identifier outside the dispatch table.
type UnsupportedModelError struct {
	Model ModelName
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model %q", e.Model)
}
