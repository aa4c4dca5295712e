package internal

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const placeholderPrefix = "New Chat "

var placeholderTitle = regexp.MustCompile(`^New Chat \d+$`)

// titleWords is how many leading words of the first message become the title.
// Four so that "Fix the button label please" becomes "Fix the button label...".
const titleWords = 4

// IsPlaceholderTitle reports whether title still has the auto-generated form
func IsPlaceholderTitle(title string) bool {
	return placeholderTitle.MatchString(title)
}

// DeriveTitle builds a chat title from the first words of a message
func DeriveTitle(text string) string {
	words := strings.Fields(text)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ") + "..."
}

// FeedbackUpdate changes the rating, the comments, or both. Nil fields are left alone.
type FeedbackUpdate struct {
	Rating   *Rating
	Comments *string
}

// SessionRepository owns the chat collection. Every mutation replaces the in-memory
// snapshot and persists it while holding mu; readers only get deep copies.
type SessionRepository struct {
	mu      sync.Mutex
	store   Store
	current Collection

	now   func() time.Time
	newID func() string
}

// LoadSessionRepository reads the persisted collection. When nothing was ever
// persisted a default chat is created and made active.
func LoadSessionRepository(store Store) (*SessionRepository, error) {
	r := &SessionRepository{
		store: store,
		now:   time.Now,
		newID: newSessionID,
	}

	var sessions []Session
	found, err := GetJSON(store, KeyChats, &sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to load chats: %w", err)
	}
	if !found {
		LogDebug("No persisted chats, creating default chat")
		if _, err := r.CreateSession(); err != nil {
			return nil, err
		}
		return r, nil
	}

	if sessions == nil {
		sessions = []Session{}
	}
	for i := range sessions {
		if sessions[i].Messages == nil {
			sessions[i].Messages = []Message{}
		}
	}
	r.current.Sessions = sessions

	activeID, _, err := store.Get(KeyActiveChat)
	if err != nil {
		return nil, fmt.Errorf("failed to load active chat: %w", err)
	}
	if _, _, ok := r.current.Find(activeID); ok {
		r.current.ActiveID = activeID
	} else if len(sessions) > 0 {
		r.current.ActiveID = sessions[0].ID
	}

	LogDebug("Loaded %d chat(s) from %s", len(sessions), store.Location())
	return r, nil
}

func newSessionID() string {
	return strings.ToLower(ulid.MustNew(ulid.Now(), rand.Reader).String())
}

// Snapshot returns a deep copy of the current collection
func (r *SessionRepository) Snapshot() Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.clone()
}

// Active returns a copy of the active session
func (r *SessionRepository) Active() (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.current.Active()
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// Session returns a copy of the session with the given id
func (r *SessionRepository) Session(id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, _, ok := r.current.Find(id)
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// commit applies mutate to a copy of the current collection. If mutate reports a
// change the copy becomes current and is persisted; a failed write restores the
// previous collection.
func (r *SessionRepository) commit(mutate func(next *Collection) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.clone()
	if !mutate(&next) {
		return nil
	}

	previous := r.current
	r.current = next
	if err := r.persist(); err != nil {
		r.current = previous
		return err
	}
	return nil
}

// persist writes the chats and the active id in one batch; callers hold mu
func (r *SessionRepository) persist() error {
	chats, err := JSONChange(KeyChats, r.current.Sessions)
	if err != nil {
		return err
	}
	active := Change{Key: KeyActiveChat, Value: r.current.ActiveID, Remove: r.current.ActiveID == ""}
	if err := r.store.Apply(chats, active); err != nil {
		return fmt.Errorf("failed to save chats: %w", err)
	}
	return nil
}

func (r *SessionRepository) uniqueID(c *Collection) string {
	for {
		id := r.newID()
		if _, _, taken := c.Find(id); !taken {
			return id
		}
	}
}

// CreateSession prepends an empty chat with a placeholder title and makes it active
func (r *SessionRepository) CreateSession() (string, error) {
	var id string
	err := r.commit(func(next *Collection) bool {
		id = r.uniqueID(next)
		title := fmt.Sprintf("%s%d", placeholderPrefix, len(next.Sessions)+1)
		next.Sessions = append([]Session{{
			ID:        id,
			Title:     title,
			Messages:  []Message{},
			CreatedAt: r.now().UnixMilli(),
		}}, next.Sessions...)
		next.ActiveID = id
		return true
	})
	if err != nil {
		return "", err
	}
	LogDebug("Created chat %s", id)
	return id, nil
}

// StartSession creates an active chat that already holds msgs, in a single write
func (r *SessionRepository) StartSession(title string, msgs ...Message) (string, error) {
	var id string
	err := r.commit(func(next *Collection) bool {
		id = r.uniqueID(next)
		if title == "" {
			title = fmt.Sprintf("%s%d", placeholderPrefix, len(next.Sessions)+1)
		}
		next.Sessions = append([]Session{{
			ID:        id,
			Title:     title,
			Messages:  cloneMessages(msgs),
			CreatedAt: r.now().UnixMilli(),
		}}, next.Sessions...)
		next.ActiveID = id
		return true
	})
	if err != nil {
		return "", err
	}
	LogDebug("Started chat %s with %d message(s)", id, len(msgs))
	return id, nil
}

// RenameSession sets the title of the chat; unknown ids are ignored
func (r *SessionRepository) RenameSession(id, title string) error {
	return r.commit(func(next *Collection) bool {
		_, i, ok := next.Find(id)
		if !ok {
			return false
		}
		next.Sessions[i].Title = title
		return true
	})
}

// RenameIfPlaceholder renames the chat only while its title is still auto-generated
func (r *SessionRepository) RenameIfPlaceholder(id, title string) (bool, error) {
	renamed := false
	err := r.commit(func(next *Collection) bool {
		s, i, ok := next.Find(id)
		if !ok || !IsPlaceholderTitle(s.Title) {
			return false
		}
		next.Sessions[i].Title = title
		renamed = true
		return true
	})
	if err != nil {
		return false, err
	}
	return renamed, nil
}

// DeleteSession removes the chat. When it was active the first remaining chat
// becomes active, or none when the collection is empty.
func (r *SessionRepository) DeleteSession(id string) error {
	return r.commit(func(next *Collection) bool {
		_, i, ok := next.Find(id)
		if !ok {
			return false
		}
		next.Sessions = append(next.Sessions[:i], next.Sessions[i+1:]...)
		if next.ActiveID == id {
			next.ActiveID = ""
			if len(next.Sessions) > 0 {
				next.ActiveID = next.Sessions[0].ID
			}
		}
		return true
	})
}

// SelectSession makes id the active chat. The id is not checked; callers pass ids
// from a current snapshot.
func (r *SessionRepository) SelectSession(id string) error {
	return r.commit(func(next *Collection) bool {
		if next.ActiveID == id {
			return false
		}
		next.ActiveID = id
		return true
	})
}

// AppendMessages adds msgs to the end of the chat in order
func (r *SessionRepository) AppendMessages(id string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return r.commit(func(next *Collection) bool {
		_, i, ok := next.Find(id)
		if !ok {
			return false
		}
		next.Sessions[i].Messages = append(next.Sessions[i].Messages, cloneMessages(msgs)...)
		return true
	})
}

// ClearMessages empties the chat
func (r *SessionRepository) ClearMessages(id string) error {
	return r.commit(func(next *Collection) bool {
		s, i, ok := next.Find(id)
		if !ok || len(s.Messages) == 0 {
			return false
		}
		next.Sessions[i].Messages = []Message{}
		return true
	})
}

// SetFeedback updates the feedback of one message. Applying the rating the message
// already has clears it. The feedback timestamp is always refreshed.
func (r *SessionRepository) SetFeedback(id string, index int, update FeedbackUpdate) error {
	return r.commit(func(next *Collection) bool {
		s, i, ok := next.Find(id)
		if !ok || index < 0 || index >= len(s.Messages) {
			return false
		}

		msg := &next.Sessions[i].Messages[index]
		fb := Feedback{}
		if msg.Feedback != nil {
			fb = *msg.Feedback
		}
		if update.Rating != nil {
			if fb.Rating == *update.Rating {
				fb.Rating = RatingNone
			} else {
				fb.Rating = *update.Rating
			}
		}
		if update.Comments != nil {
			fb.Comments = *update.Comments
		}
		// UTC without a monotonic reading, so a reloaded record compares equal
		now := r.now().UTC().Round(0)
		fb.Timestamp = &now
		msg.Feedback = &fb
		return true
	})
}
