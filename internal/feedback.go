package internal

// FeedbackAnnotator records ratings and comments on assistant replies
type FeedbackAnnotator struct {
	sessions *SessionRepository
}

// NewFeedbackAnnotator creates an annotator backed by the repository
func NewFeedbackAnnotator(sessions *SessionRepository) *FeedbackAnnotator {
	return &FeedbackAnnotator{sessions: sessions}
}

func (a *FeedbackAnnotator) check(sessionID string, index int) error {
	s, ok := a.sessions.Session(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(s.Messages) {
		return ErrMessageNotFound
	}
	if s.Messages[index].Role != RoleAssistant {
		return ErrNotAssistantMessage
	}
	return nil
}

// Rate applies rating to the message. Rating a message with the rating it
// already has clears it.
func (a *FeedbackAnnotator) Rate(sessionID string, index int, rating Rating) error {
	if err := a.check(sessionID, index); err != nil {
		return err
	}
	return a.sessions.SetFeedback(sessionID, index, FeedbackUpdate{Rating: &rating})
}

// Comment replaces the comments on the message
func (a *FeedbackAnnotator) Comment(sessionID string, index int, text string) error {
	if err := a.check(sessionID, index); err != nil {
		return err
	}
	return a.sessions.SetFeedback(sessionID, index, FeedbackUpdate{Comments: &text})
}
