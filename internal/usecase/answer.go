package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/knowledge"
)

type SecretSource interface {
	LookupSecret(ctx context.Context, name string) (string, bool, error)
}

type KnowledgeLoader interface {
	Load(ctx context.Context) (string, error)
}

type Provider interface {
	Family() domain.Family
	Payload(p domain.Prompt) ([]byte, error)
	Send(ctx context.Context, apiKey string, payload []byte) (domain.ProviderResponse, error)
}

// AnswerService answers one question per call from the knowledge base. It
// holds no per-request state and is safe for concurrent use.
type AnswerService struct {
	secrets      SecretSource
	knowledge    KnowledgeLoader
	provider     Provider
	apiKeyName   string
	targetSystem string
	logger       *slog.Logger
}

type AnswerInput struct {
	Message string
}

type AnswerOutput struct {
	Reply string
}

func NewAnswerService(secrets SecretSource, kb KnowledgeLoader, provider Provider, apiKeyName, targetSystem string, logger *slog.Logger) (*AnswerService, error) {
	if secrets == nil {
		return nil, errors.New("usecase: secret source must not be nil")
	}
	if kb == nil {
		return nil, errors.New("usecase: knowledge loader must not be nil")
	}
	if provider == nil {
		return nil, errors.New("usecase: provider must not be nil")
	}
	apiKeyName = strings.TrimSpace(apiKeyName)
	if apiKeyName == "" {
		return nil, errors.New("usecase: api key name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerService{
		secrets:      secrets,
		knowledge:    kb,
		provider:     provider,
		apiKeyName:   apiKeyName,
		targetSystem: targetSystem,
		logger:       logger,
	}, nil
}

// Answer runs one request cycle. Every returned error is an *Error carrying
// the reply to show the user.
func (s *AnswerService) Answer(ctx context.Context, in AnswerInput) (AnswerOutput, error) {
	apiKey, err := s.resolveAPIKey(ctx)
	if err != nil {
		return AnswerOutput{Reply: ReplyFor(err)}, err
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return AnswerOutput{Reply: ReplyEmptyMessage}, newError(ErrorInvalidInput, "empty_message", ReplyEmptyMessage, nil)
	}

	kb, err := s.knowledge.Load(ctx)
	if err != nil {
		reason := "knowledge_base_error"
		if errors.Is(err, knowledge.ErrNotFound) {
			reason = "knowledge_base_missing"
		}
		s.logger.WarnContext(ctx, "knowledge base unavailable", "reason", reason, "err", err)
		return AnswerOutput{Reply: ReplyKnowledgeBaseMissing}, newError(ErrorConfiguration, reason, ReplyKnowledgeBaseMissing, err)
	}

	family := s.provider.Family()
	prompt, err := BuildPrompt(family, s.targetSystem, kb, message)
	if err != nil {
		return AnswerOutput{Reply: ReplyInternal}, newError(ErrorConfiguration, "unsupported_provider", ReplyInternal, err)
	}
	payload, err := s.provider.Payload(prompt)
	if err != nil {
		return AnswerOutput{Reply: ReplyInternal}, newError(ErrorInternal, "payload_error", ReplyInternal, err)
	}

	resp, callErr := s.provider.Send(ctx, apiKey, payload)
	if callErr != nil || !resp.OK() {
		s.logger.ErrorContext(ctx, "provider call failed",
			"family", string(family),
			"status", resp.StatusCode,
			"body", string(resp.Body),
			"err", callErr,
		)
	}

	reply, err := Normalize(family, resp, callErr)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Code == ErrorNormalization {
			s.logger.ErrorContext(ctx, "unexpected provider response",
				"family", string(family),
				"reason", e.Reason,
				"status", resp.StatusCode,
				"body", string(resp.Body),
			)
		}
		return AnswerOutput{Reply: reply.Reply}, err
	}
	return AnswerOutput{Reply: reply.Reply}, nil
}

// Reply answers req and never fails: every outcome, including a panic in a
// dependency, becomes reply text.
func (s *AnswerService) Reply(ctx context.Context, req domain.ChatRequest) (out domain.ChatReply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "answer panicked", "panic", fmt.Sprint(r))
			out = domain.ChatReply{Reply: ReplyInternal}
		}
	}()
	res, err := s.Answer(ctx, AnswerInput{Message: req.Message})
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			s.logger.InfoContext(ctx, "chat turn failed", "code", string(e.Code), "reason", e.Reason)
		} else {
			s.logger.ErrorContext(ctx, "chat turn failed", "err", err)
		}
		return domain.ChatReply{Reply: ReplyFor(err)}
	}
	return domain.ChatReply{Reply: res.Reply}
}

func (s *AnswerService) resolveAPIKey(ctx context.Context) (string, error) {
	key, ok, err := s.secrets.LookupSecret(ctx, s.apiKeyName)
	if err != nil {
		s.logger.WarnContext(ctx, "api key lookup failed", "key", s.apiKeyName, "err", err)
		return "", newError(ErrorConfiguration, "secret_lookup_error", ReplyAPIKeyMissing, err)
	}
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", newError(ErrorConfiguration, "api_key_missing", ReplyAPIKeyMissing, nil)
	}
	return key, nil
}
