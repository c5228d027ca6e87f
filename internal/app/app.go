// Package app assembles the answer service from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"hub-assistant/internal/config"
	"hub-assistant/internal/domain"
	"hub-assistant/internal/integrations/envfile"
	"hub-assistant/internal/integrations/gemini"
	"hub-assistant/internal/integrations/openai"
	"hub-assistant/internal/integrations/paramstore"
	"hub-assistant/internal/knowledge"
	"hub-assistant/internal/usecase"
)

// NewProvider builds the client for the configured provider family.
func NewProvider(cfg config.Config) (usecase.Provider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case domain.FamilyGemini:
		return gemini.NewClient(
			gemini.WithBaseURL(cfg.BaseURL),
			gemini.WithModel(cfg.Model),
			gemini.WithHTTPClient(httpClient),
		), nil
	case domain.FamilyOpenAI:
		return openai.NewClient(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		), nil
	default:
		return nil, fmt.Errorf("app: unsupported provider %q", cfg.Provider)
	}
}

// NewSources returns the secret source and knowledge loader: SSM Parameter
// Store when a prefix is configured, local files otherwise.
func NewSources(ctx context.Context, cfg config.Config) (usecase.SecretSource, usecase.KnowledgeLoader, error) {
	if !cfg.UseParamStore() {
		secrets := envfile.Source{
			Path:     cfg.SecretsFile,
			Defaults: map[string]string{cfg.APIKeyName: os.Getenv(cfg.APIKeyName)},
		}
		return secrets, knowledge.FileLoader{Path: cfg.KnowledgeBasePath}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	store, err := paramstore.New(awsssm.NewFromConfig(awsCfg), cfg.ParamPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("app: create param store client: %w", err)
	}
	kb, err := knowledge.NewParamLoader(store, cfg.KnowledgeBaseParam)
	if err != nil {
		return nil, nil, fmt.Errorf("app: create knowledge loader: %w", err)
	}
	return store, kb, nil
}

func NewAnswerService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*usecase.AnswerService, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	secrets, kb, err := NewSources(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return usecase.NewAnswerService(secrets, kb, provider, cfg.APIKeyName, cfg.TargetSystem, logger)
}
