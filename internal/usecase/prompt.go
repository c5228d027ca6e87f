package usecase

import (
	"fmt"
	"strings"

	"hub-assistant/internal/domain"
)

const DefaultTargetSystem = "HUB"

func buildInstructions(system string) string {
	system = strings.TrimSpace(system)
	if system == "" {
		system = DefaultTargetSystem
	}
	return strings.Join([]string{
		fmt.Sprintf("You are an AI assistant specializing in the internal warehouse management system called %s.", system),
		"Answer the user's questions using ONLY the knowledge base provided below.",
		"Do not make anything up.",
		fmt.Sprintf("If the knowledge base does not contain the answer, politely say that you can only answer questions about the %s system.", system),
	}, " ")
}

// BuildPrompt combines the fixed instructions, the knowledge base and the
// user's message into the shape the provider family expects. It is pure.
func BuildPrompt(family domain.Family, system, knowledgeBase, message string) (domain.Prompt, error) {
	instructions := buildInstructions(system)
	switch family {
	case domain.FamilyGemini:
		return domain.Prompt{
			Family: family,
			Text: instructions +
				"\n\nKnowledge base:\n---\n" + knowledgeBase + "\n---\n\n" +
				"User question: \"" + message + "\"",
		}, nil
	case domain.FamilyOpenAI:
		return domain.Prompt{
			Family: family,
			Messages: []domain.ChatMessage{
				{Role: "system", Content: instructions + "\n\nKnowledge base:\n---\n" + knowledgeBase + "\n---"},
				{Role: "user", Content: message},
			},
		}, nil
	default:
		return domain.Prompt{}, fmt.Errorf("usecase: unsupported provider family %q", family)
	}
}
