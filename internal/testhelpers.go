package internal

import (
	"time"
)

// CreateTestSession creates a test session with a rated exchange
func CreateTestSession(id string) Session {
	stamp := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	return Session{
		ID:        id,
		Title:     "Test Conversation",
		CreatedAt: stamp.Add(-time.Hour).UnixMilli(),
		Messages: []Message{
			{
				Role:    RoleUser,
				Content: "Hello, how are you?",
			},
			{
				Role:    RoleAssistant,
				Content: "I'm doing well, thank you!",
				Feedback: &Feedback{
					Rating:    RatingPositive,
					Comments:  "friendly",
					Timestamp: &stamp,
				},
			},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) Session {
	return Session{
		ID:        id,
		Title:     "New Chat 1",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Messages:  messages,
	}
}
