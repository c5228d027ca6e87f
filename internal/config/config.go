// Package config reads process configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"hub-assistant/internal/domain"
)

type Config struct {
	Provider           domain.Family
	Model              string
	BaseURL            string
	Timeout            time.Duration
	APIKeyName         string
	SecretsFile        string
	KnowledgeBasePath  string
	ParamPrefix        string
	KnowledgeBaseParam string
	TargetSystem       string
	ListenAddr         string
}

// UseParamStore reports whether secrets and the knowledge base come from SSM.
func (c Config) UseParamStore() bool {
	return c.ParamPrefix != ""
}

var defaults = map[string]any{
	"llm_provider":         string(domain.FamilyGemini),
	"llm_model":            "",
	"llm_base_url":         "",
	"llm_timeout_seconds":  60,
	"api_key_name":         "",
	"secrets_file":         ".env",
	"knowledge_base_path":  "db/knowledge_base.txt",
	"param_prefix":         "",
	"knowledge_base_param": "knowledge_base",
	"target_system":        "HUB",
	"listen_addr":          ":8080",
}

// Load reads configuration from the environment after loading .env if present.
func Load() (Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Provider:           domain.Family(strings.ToLower(strings.TrimSpace(v.GetString("llm_provider")))),
		Model:              strings.TrimSpace(v.GetString("llm_model")),
		BaseURL:            strings.TrimSpace(v.GetString("llm_base_url")),
		Timeout:            time.Duration(v.GetInt("llm_timeout_seconds")) * time.Second,
		APIKeyName:         strings.TrimSpace(v.GetString("api_key_name")),
		SecretsFile:        strings.TrimSpace(v.GetString("secrets_file")),
		KnowledgeBasePath:  strings.TrimSpace(v.GetString("knowledge_base_path")),
		ParamPrefix:        strings.TrimSpace(v.GetString("param_prefix")),
		KnowledgeBaseParam: strings.TrimSpace(v.GetString("knowledge_base_param")),
		TargetSystem:       strings.TrimSpace(v.GetString("target_system")),
		ListenAddr:         strings.TrimSpace(v.GetString("listen_addr")),
	}
	if cfg.APIKeyName == "" {
		cfg.APIKeyName = defaultAPIKeyName(cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultAPIKeyName(f domain.Family) string {
	switch f {
	case domain.FamilyOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

func (c Config) Validate() error {
	switch c.Provider {
	case domain.FamilyGemini, domain.FamilyOpenAI:
	default:
		return fmt.Errorf("config: unsupported LLM_PROVIDER %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: LLM_TIMEOUT_SECONDS must be positive, got %s", c.Timeout)
	}
	if c.UseParamStore() && c.KnowledgeBaseParam == "" {
		return fmt.Errorf("config: KNOWLEDGE_BASE_PARAM must be set when PARAM_PREFIX is set")
	}
	return nil
}
