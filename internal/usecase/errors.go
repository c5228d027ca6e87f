package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrorConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrorTransport     ErrorCode = "TRANSPORT_ERROR"
	ErrorProvider      ErrorCode = "PROVIDER_ERROR"
	ErrorNormalization ErrorCode = "NORMALIZATION_ERROR"
	ErrorInternal      ErrorCode = "INTERNAL_ERROR"
)

// User-facing replies. Failures are delivered to the client as reply text.
const (
	ReplyAPIKeyMissing        = "Error: API key not found. Please add it to the .env file."
	ReplyEmptyMessage         = "Please enter a message."
	ReplyKnowledgeBaseMissing = "Error: knowledge base not found."
	ReplyMalformedResponse    = "Error: could not parse the response from the AI service."
	ReplyUnexpectedResponse   = "Received an unexpected response from the AI service. There may be a problem with the configuration or the API key."
	ReplyInternal             = "Sorry, something went wrong. Please try again."

	replyTransportFormat = "Error contacting the AI service. Status: %d. Please check the API key and server configuration."
	replyProviderFormat  = "The AI service returned an error (code %s): %s"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Reply  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason, reply string, err error) *Error {
	return &Error{Code: code, Reason: reason, Reply: reply, Err: err}
}

// ReplyFor returns the user-facing reply carried by err, or a generic reply
// for errors that did not come from this package.
func ReplyFor(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Reply != "" {
		return e.Reply
	}
	return ReplyInternal
}
