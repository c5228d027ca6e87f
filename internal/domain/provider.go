package domain

// Family identifies an LLM provider API shape.
type Family string

const (
	// FamilyGemini is the query-key authenticated generateContent API taking a single prompt blob.
	FamilyGemini Family = "gemini"
	// FamilyOpenAI is the bearer-token authenticated chat-completions API taking role-tagged messages.
	FamilyOpenAI Family = "openai"
)

// Prompt is the provider-ready request content. Exactly one of Text or
// Messages is set, depending on Family.
type Prompt struct {
	Family   Family
	Text     string
	Messages []ChatMessage
}

// ProviderResponse is the raw outcome of one outbound call, captured for any
// HTTP status.
type ProviderResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r ProviderResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	OutcomeUnexpectedShape OutcomeKind = iota
	OutcomeSuccess
	OutcomeProviderError
	OutcomeMalformedBody
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeProviderError:
		return "provider_error"
	case OutcomeMalformedBody:
		return "malformed_body"
	default:
		return "unexpected_shape"
	}
}

// Outcome is the parsed form of a provider response body.
// Text is set for OutcomeSuccess; Code and Message for OutcomeProviderError.
type Outcome struct {
	Kind    OutcomeKind
	Text    string
	Code    string
	Message string
}

func Success(text string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Text: text}
}

func ProviderError(code, message string) Outcome {
	return Outcome{Kind: OutcomeProviderError, Code: code, Message: message}
}

func MalformedBody() Outcome {
	return Outcome{Kind: OutcomeMalformedBody}
}

func UnexpectedShape() Outcome {
	return Outcome{Kind: OutcomeUnexpectedShape}
}
