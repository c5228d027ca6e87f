package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/integrations/gemini"
	"hub-assistant/internal/integrations/openai"
)

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// ParseOutcome picks the body parser for the provider family.
func ParseOutcome(family domain.Family, body []byte) domain.Outcome {
	switch family {
	case domain.FamilyGemini:
		return gemini.ParseResponse(body)
	case domain.FamilyOpenAI:
		return openai.ParseResponse(body)
	default:
		return domain.UnexpectedShape()
	}
}

// Normalize maps the result of one provider call to a reply. The returned
// ChatReply is always populated; the error, when non-nil, is an *Error whose
// Reply equals the returned reply.
func Normalize(family domain.Family, resp domain.ProviderResponse, callErr error) (domain.ChatReply, error) {
	if callErr != nil {
		status := bestKnownStatus(resp, callErr)
		return failed(newError(ErrorTransport, "transport_error", fmt.Sprintf(replyTransportFormat, status), callErr))
	}

	outcome := ParseOutcome(family, resp.Body)
	if !resp.OK() && outcome.Kind != domain.OutcomeProviderError {
		outcome = domain.ProviderError("", "")
	}

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return domain.ChatReply{Reply: strings.TrimSpace(outcome.Text)}, nil
	case domain.OutcomeProviderError:
		code := strings.TrimSpace(outcome.Code)
		if code == "" {
			code = strconv.Itoa(resp.StatusCode)
		}
		msg := strings.TrimSpace(outcome.Message)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if msg == "" {
			msg = "unknown error"
		}
		return failed(newError(ErrorProvider, "provider_error", fmt.Sprintf(replyProviderFormat, code, msg),
			fmt.Errorf("provider reported %s: %s", code, msg)))
	case domain.OutcomeMalformedBody:
		return failed(newError(ErrorNormalization, "malformed_response", ReplyMalformedResponse, errors.New("response body is not valid JSON")))
	default:
		return failed(newError(ErrorNormalization, "unexpected_response", ReplyUnexpectedResponse, errors.New("response has no answer or error fields")))
	}
}

func failed(e *Error) (domain.ChatReply, error) {
	return domain.ChatReply{Reply: e.Reply}, e
}

func bestKnownStatus(resp domain.ProviderResponse, err error) int {
	var sc httpStatusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() != 0 {
		return sc.HTTPStatusCode()
	}
	if resp.StatusCode != 0 {
		return resp.StatusCode
	}
	return http.StatusInternalServerError
}
