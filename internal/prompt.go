package internal

import (
	"strings"
)

const (
	systemPreamble = "You are an AI assistant that helps generate and improve UI text.\n" +
		"Consider these writing style guidelines when creating your responses:\n\n"
	noGuidelines = "No specific guidelines provided."
)

// ChatMessage is one entry of the outbound request
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemPrompt renders the instruction preamble followed by every guideline
func SystemPrompt(guidelines []Guideline) string {
	if len(guidelines) == 0 {
		return systemPreamble + noGuidelines
	}
	parts := make([]string, len(guidelines))
	for i, g := range guidelines {
		parts[i] = g.Name + ":\n" + g.Content
	}
	return systemPreamble + strings.Join(parts, "\n\n")
}

// BuildRequestMessages returns the system prompt followed by history, with every
// non-user role sent as assistant
func BuildRequestMessages(guidelines []Guideline, history []Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(history)+1)
	out = append(out, ChatMessage{Role: RoleSystem, Content: SystemPrompt(guidelines)})
	for _, m := range history {
		role := RoleAssistant
		if m.Role == RoleUser {
			role = RoleUser
		}
		out = append(out, ChatMessage{Role: role, Content: m.Content})
	}
	return out
}
