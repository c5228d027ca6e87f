package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// Answerer turns a chat request into reply text. It does not fail.
type Answerer interface {
	Reply(ctx context.Context, req domain.ChatRequest) domain.ChatReply
}

// Handler serves the chat endpoint behind API Gateway. Every defined outcome
// is a 200 with a {"reply": ...} body.
type Handler struct {
	answerer Answerer
	logger   *slog.Logger
}

func NewHandler(a Answerer) (*Handler, error) {
	if a == nil {
		return nil, errors.New("handler: answerer must not be nil")
	}
	return &Handler{answerer: a, logger: slog.Default()}, nil
}

func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	logger := h.logger.With("correlation_id", corrID)

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			logger.WarnContext(ctx, "invalid base64 request body", "err", err)
			return reply(corrID, usecase.ReplyEmptyMessage), nil
		}
		body = decoded
	}

	var req domain.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "err", err)
		return reply(corrID, usecase.ReplyEmptyMessage), nil
	}

	return reply(corrID, answer(ctx, logger, h.answerer, req)), nil
}

// answer runs one chat turn. A panic in the answerer becomes the generic
// reply so the caller still gets a 200.
func answer(ctx context.Context, logger *slog.Logger, a Answerer, req domain.ChatRequest) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "chat turn panicked", "panic", fmt.Sprint(r))
			text = usecase.ReplyInternal
		}
	}()
	return a.Reply(ctx, req).Reply
}

func reply(corrID, text string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(domain.ChatReply{Reply: text})
	if err != nil {
		body = []byte(`{"reply":""}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(body),
	}
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
