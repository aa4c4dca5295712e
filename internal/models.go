package internal

import (
	"time"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system" // only synthesized for requests, never stored
)

// Rating is the quality signal attached to a message. The empty rating means none.
type Rating string

const (
	RatingNone     Rating = ""
	RatingPositive Rating = "positive"
	RatingNegative Rating = "negative"
)

// ParseRating accepts the names used on the command line
func ParseRating(s string) (Rating, bool) {
	switch s {
	case "positive", "up", "+":
		return RatingPositive, true
	case "negative", "down", "-":
		return RatingNegative, true
	case "none", "":
		return RatingNone, true
	}
	return RatingNone, false
}

// Feedback is a user rating/comment on a single message
type Feedback struct {
	Rating    Rating     `json:"rating,omitempty" yaml:"rating,omitempty"`
	Comments  string     `json:"comments,omitempty" yaml:"comments,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Message is one entry of a conversation
type Message struct {
	Role     Role      `json:"role" yaml:"role"`
	Content  string    `json:"content" yaml:"content"`
	Thinking string    `json:"thinking,omitempty" yaml:"thinking,omitempty"` // stored, never sent
	Feedback *Feedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// Session is one independent conversation thread ("chat")
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Message `json:"messages" yaml:"messages"`
	CreatedAt int64     `json:"createdAt" yaml:"created_at"` // epoch milliseconds
}

// Created returns the creation instant
func (s Session) Created() time.Time {
	if s.CreatedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.CreatedAt)
}

// Collection is an ordered set of sessions with at most one active
type Collection struct {
	Sessions []Session
	ActiveID string
}

// Find returns the session with the given id and its position
func (c Collection) Find(id string) (Session, int, bool) {
	for i, s := range c.Sessions {
		if s.ID == id {
			return s, i, true
		}
	}
	return Session{}, -1, false
}

// Active returns the active session, if any
func (c Collection) Active() (Session, bool) {
	if c.ActiveID == "" {
		return Session{}, false
	}
	s, _, ok := c.Find(c.ActiveID)
	return s, ok
}

// Guideline is an uploaded style reference document
type Guideline struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

func (f *Feedback) clone() *Feedback {
	if f == nil {
		return nil
	}
	c := *f
	if f.Timestamp != nil {
		ts := *f.Timestamp
		c.Timestamp = &ts
	}
	return &c
}

func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		m.Feedback = m.Feedback.clone()
		out[i] = m
	}
	return out
}

func (s Session) clone() Session {
	s.Messages = cloneMessages(s.Messages)
	return s
}

func (c Collection) clone() Collection {
	out := Collection{ActiveID: c.ActiveID, Sessions: make([]Session, len(c.Sessions))}
	for i, s := range c.Sessions {
		out.Sessions[i] = s.clone()
	}
	return out
}
