package internal

import (
	"context"
	"strings"
	"sync"
)

// SettingsLoader supplies the credentials for each submission
type SettingsLoader interface {
	Load() (Settings, error)
}

// Orchestrator turns user input into a persisted exchange: it appends the user
// message, calls the completion service and writes the reply back to the chat
// that was active when the message was sent.
type Orchestrator struct {
	sessions   *SessionRepository
	guidelines *GuidelineStore
	settings   SettingsLoader
	completer  Completer
	banner     *Banner

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewOrchestrator wires the orchestrator to its collaborators
func NewOrchestrator(sessions *SessionRepository, guidelines *GuidelineStore, settings SettingsLoader, completer Completer) *Orchestrator {
	return &Orchestrator{
		sessions:   sessions,
		guidelines: guidelines,
		settings:   settings,
		completer:  completer,
		banner:     NewBanner(),
		inFlight:   make(map[string]bool),
	}
}

// Banner returns the error banner updated by submissions
func (o *Orchestrator) Banner() *Banner {
	return o.banner
}

// Busy reports whether a reply for the chat is still outstanding
func (o *Orchestrator) Busy(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight[sessionID]
}

func (o *Orchestrator) acquire(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight[sessionID] {
		return false
	}
	o.inFlight[sessionID] = true
	return true
}

func (o *Orchestrator) release(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, sessionID)
}

// Pending is a submission whose user message is persisted and whose reply has not
// been requested yet
type Pending struct {
	o *Orchestrator

	sessionID     string
	history       []Message
	guidelines    []Guideline
	settings      Settings
	title         string
	renameOnReply bool

	once  sync.Once
	reply string
	err   error
}

// SessionID is the chat the reply will be written to
func (p *Pending) SessionID() string {
	return p.sessionID
}

// Begin validates the input and settings, resolves the target chat and persists
// the user message. Nothing is persisted when an error is returned.
func (o *Orchestrator) Begin(text string) (*Pending, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	settings, err := o.settings.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		LogWarn("Submission rejected: %v", err)
		o.banner.Show(DisplayMessage(err))
		return nil, err
	}

	userMsg := Message{Role: RoleUser, Content: text}
	p := &Pending{
		o:          o,
		guidelines: o.guidelines.List(),
		settings:   settings,
		title:      DeriveTitle(text),
	}

	active, ok := o.sessions.Active()
	if ok {
		id := active.ID
		if !o.acquire(id) {
			return nil, ErrSubmissionInFlight
		}
		// the previous reply is appended before its lock is released, so read after acquiring
		if active, ok = o.sessions.Session(id); !ok {
			o.release(id)
		}
	}

	if !ok {
		id, err := o.sessions.StartSession(p.title, userMsg)
		if err != nil {
			return nil, err
		}
		o.acquire(id)
		p.sessionID = id
		p.history = []Message{userMsg}
	} else {
		if err := o.sessions.AppendMessages(active.ID, userMsg); err != nil {
			o.release(active.ID)
			return nil, err
		}
		p.sessionID = active.ID
		p.history = append(active.Messages, userMsg)
		p.renameOnReply = len(active.Messages) == 0
	}

	LogDebug("Submitted message to chat %s (%d in history)", p.sessionID, len(p.history))
	return p, nil
}

// Await requests the reply and appends it to the captured chat. The reply is
// dropped if that chat was deleted in the meantime. Calling Await again returns
// the first result.
func (p *Pending) Await(ctx context.Context) (string, error) {
	p.once.Do(func() {
		p.reply, p.err = p.await(ctx)
	})
	return p.reply, p.err
}

func (p *Pending) await(ctx context.Context) (string, error) {
	o := p.o
	defer o.release(p.sessionID)

	reply, err := o.completer.Complete(ctx, p.settings, BuildRequestMessages(p.guidelines, p.history))
	if err != nil {
		LogError("Completion for chat %s failed: %v", p.sessionID, err)
		o.banner.Show(DisplayMessage(err))
		return "", err
	}

	if _, ok := o.sessions.Session(p.sessionID); !ok {
		LogDebug("Chat %s was deleted, dropping reply", p.sessionID)
		o.banner.Clear()
		return reply, nil
	}
	if err := o.sessions.AppendMessages(p.sessionID, Message{Role: RoleAssistant, Content: reply}); err != nil {
		o.banner.Show(DisplayMessage(err))
		return "", err
	}
	if p.renameOnReply {
		if _, err := o.sessions.RenameIfPlaceholder(p.sessionID, p.title); err != nil {
			LogWarn("Failed to title chat %s: %v", p.sessionID, err)
		}
	}

	o.banner.Clear()
	return reply, nil
}

// Submit sends text and waits for the reply
func (o *Orchestrator) Submit(ctx context.Context, text string) (string, error) {
	p, err := o.Begin(text)
	if err != nil {
		return "", err
	}
	return p.Await(ctx)
}

// Result is the outcome of an asynchronous submission
type Result struct {
	SessionID string
	Reply     string
	Err       error
}

// SubmitAsync persists the user message and waits for the reply on its own
// goroutine. The channel receives exactly one Result.
func (o *Orchestrator) SubmitAsync(ctx context.Context, text string) (<-chan Result, error) {
	p, err := o.Begin(text)
	if err != nil {
		return nil, err
	}
	ch := make(chan Result, 1)
	go func() {
		reply, err := p.Await(ctx)
		ch <- Result{SessionID: p.sessionID, Reply: reply, Err: err}
	}()
	return ch, nil
}
