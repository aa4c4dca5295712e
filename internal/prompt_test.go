package internal

import (
	"testing"
)

func TestSystemPrompt(t *testing.T) {
	empty := SystemPrompt(nil)
	want := "You are an AI assistant that helps generate and improve UI text.\n" +
		"Consider these writing style guidelines when creating your responses:\n\n" +
		"No specific guidelines provided."
	if empty != want {
		t.Errorf("SystemPrompt(nil) = %q", empty)
	}

	got := SystemPrompt([]Guideline{
		{Name: "voice.md", Content: "Be concise."},
		{Name: "voice.md", Content: "Duplicates are kept."},
	})
	wantTail := "voice.md:\nBe concise.\n\nvoice.md:\nDuplicates are kept."
	if got != systemPreamble+wantTail {
		t.Errorf("SystemPrompt() = %q", got)
	}
}

func TestBuildRequestMessages(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b", Thinking: "hidden", Feedback: &Feedback{Rating: RatingPositive}},
		{Role: "bot", Content: "c"},
	}
	got := BuildRequestMessages(nil, history)

	want := []ChatMessage{
		{Role: RoleSystem, Content: SystemPrompt(nil)},
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
		{Role: RoleAssistant, Content: "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
