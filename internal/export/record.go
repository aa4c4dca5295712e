package export

import (
	"time"

	"github.com/iksnae/uicopy/internal"
)

// Record is the exported view of one chat
type Record struct {
	ChatID     string          `json:"chatId" yaml:"chatId"`
	Title      string          `json:"title" yaml:"title"`
	CreatedAt  time.Time       `json:"createdAt" yaml:"createdAt"`
	ExportedAt time.Time       `json:"exportedAt" yaml:"exportedAt"`
	Messages   []RecordMessage `json:"messages" yaml:"messages"`
}

// RecordMessage is one exported message; Feedback is null when the message was never annotated
type RecordMessage struct {
	Role     internal.Role      `json:"role" yaml:"role"`
	Content  string             `json:"content" yaml:"content"`
	Feedback *internal.Feedback `json:"feedback" yaml:"feedback"`
}

// NewRecord projects session into a Record
func NewRecord(session internal.Session, exportedAt time.Time) Record {
	r := Record{
		ChatID:     session.ID,
		Title:      session.Title,
		CreatedAt:  session.Created().UTC(),
		ExportedAt: exportedAt.UTC(),
		Messages:   make([]RecordMessage, 0, len(session.Messages)),
	}
	for _, m := range session.Messages {
		rm := RecordMessage{Role: m.Role, Content: m.Content}
		if m.Feedback != nil {
			fb := *m.Feedback
			rm.Feedback = &fb
		}
		r.Messages = append(r.Messages, rm)
	}
	return r
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
