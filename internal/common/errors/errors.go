// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"business-advisor/internal/diagnostic"
	"business-advisor/internal/market"
	"business-advisor/internal/valuation"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput           ErrorCode = "INVALID_INPUT"
	ErrCodeUnknownIndustry        ErrorCode = "UNKNOWN_INDUSTRY"
	ErrCodeDivisionByZero         ErrorCode = "DIVISION_BY_ZERO"
	ErrCodeIncompleteAnswers      ErrorCode = "INCOMPLETE_ANSWERS"
	ErrCodeInvalidAnswer          ErrorCode = "INVALID_ANSWER"
	ErrCodeInsufficientMarketData ErrorCode = "INSUFFICIENT_MARKET_DATA"
	ErrCodeTimeout                ErrorCode = "TIMEOUT"
	ErrCodeBrokerUnavailable      ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false)
}

func NewUnknownIndustryError(details string) *StandardError {
	return newError(ErrCodeUnknownIndustry, "Industry is not in the multiplier table", details, false)
}

func NewDivisionByZeroError(details string) *StandardError {
	return newError(ErrCodeDivisionByZero, "Derived ratio has a zero denominator", details, false)
}

func NewIncompleteAnswersError(details string) *StandardError {
	return newError(ErrCodeIncompleteAnswers, "Not every diagnostic question was answered", details, false)
}

func NewInvalidAnswerError(details string) *StandardError {
	return newError(ErrCodeInvalidAnswer, "Answer is not a valid option", details, false)
}

func NewInsufficientMarketDataError(details string) *StandardError {
	return newError(ErrCodeInsufficientMarketData, "Market series is too short", details, false)
}

// Timeouts and broker outages are the only retryable errors; the engines themselves are deterministic.
func NewTimeoutError(operation string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Operation '%s' timed out", operation), err.Error(), true)
}

func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, fmt.Sprintf("Zeebe operation '%s' failed", operation), err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// FromDomain maps an engine error onto a StandardError. Errors that already are
// StandardErrors pass through unchanged.
func FromDomain(err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	details := err.Error()
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError("execute", err)
	case stderrors.Is(err, valuation.ErrUnknownIndustry),
		stderrors.Is(err, valuation.ErrIndustryRequired):
		return NewUnknownIndustryError(details)
	case stderrors.Is(err, valuation.ErrDivisionByZero),
		stderrors.Is(err, market.ErrDivisionByZero):
		return NewDivisionByZeroError(details)
	case stderrors.Is(err, diagnostic.ErrIncompleteAnswers):
		return NewIncompleteAnswersError(details)
	case stderrors.Is(err, diagnostic.ErrInvalidAnswer),
		stderrors.Is(err, diagnostic.ErrUnknownQuestion):
		return NewInvalidAnswerError(details)
	case stderrors.Is(err, market.ErrInsufficientData):
		return NewInsufficientMarketDataError(details)
	case stderrors.Is(err, market.ErrUnknownTimeframe):
		return NewInvalidInputError(details)
	default:
		return NewInternalError(err)
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by process boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeUnknownIndustry:        "UNKNOWN_INDUSTRY",
	ErrCodeDivisionByZero:         "DIVISION_BY_ZERO",
	ErrCodeIncompleteAnswers:      "INCOMPLETE_ANSWERS",
	ErrCodeInvalidAnswer:          "INVALID_ANSWER",
	ErrCodeInsufficientMarketData: "INSUFFICIENT_MARKET_DATA",
	ErrCodeTimeout:                "TIMEOUT",
	ErrCodeBrokerUnavailable:      "BROKER_UNAVAILABLE",
	ErrCodeInternal:               "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeBrokerUnavailable:
		return 3
	case ErrCodeTimeout:
		return 2
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INDUSTRY") || strings.Contains(codeStr, "DIVISION"):
		return "VALUATION"
	case strings.Contains(codeStr, "ANSWER"):
		return "DIAGNOSTIC"
	case strings.Contains(codeStr, "MARKET"):
		return "MARKET"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "BROKER"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}
