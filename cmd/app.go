package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/internal/config"
)

// app holds the components one command invocation works with
type app struct {
	env          *config.UICopyEnv
	store        internal.Store
	sessions     *internal.SessionRepository
	guidelines   *internal.GuidelineStore
	settings     *internal.SettingsStore
	feedback     *internal.FeedbackAnnotator
	orchestrator *internal.Orchestrator
}

// openApp opens the durable store and loads every component from it
func openApp() (*app, error) {
	env := config.Env()

	kind := storeKind
	if kind == "" {
		kind = env.Store
	}
	path, err := env.StorePath(kind, storagePath)
	if err != nil {
		return nil, err
	}

	store, err := internal.OpenStore(kind, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	internal.LogDebug("Using %s store at %s", kind, store.Location())

	sessions, err := internal.LoadSessionRepository(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	guidelines, err := internal.LoadGuidelineStore(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	settings := internal.NewSettingsStore(store, internal.Settings{
		APIKey:       env.AzureAPIKey,
		Endpoint:     env.AzureEndpoint,
		EndpointName: env.AzureEndpointName,
	})
	client := internal.NewAzureClient(env.APIVersion, env.RequestTimeout)

	return &app{
		env:          env,
		store:        store,
		sessions:     sessions,
		guidelines:   guidelines,
		settings:     settings,
		feedback:     internal.NewFeedbackAnnotator(sessions),
		orchestrator: internal.NewOrchestrator(sessions, guidelines, settings, client),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// resolveSession finds the chat named by ref, which may be a full id or a
// unique prefix of one. An empty ref means the active chat.
func resolveSession(c internal.Collection, ref string) (internal.Session, error) {
	if ref == "" {
		s, ok := c.Active()
		if !ok {
			return internal.Session{}, fmt.Errorf("no active chat (use 'uicopy new' or 'uicopy use <id>')")
		}
		return s, nil
	}
	if s, _, ok := c.Find(ref); ok {
		return s, nil
	}

	var matches []internal.Session
	for _, s := range c.Sessions {
		if strings.HasPrefix(s.ID, strings.ToLower(ref)) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return internal.Session{}, fmt.Errorf("%w: %s (use 'uicopy list' to see available chats)", internal.ErrSessionNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return internal.Session{}, fmt.Errorf("chat id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// parseMessageIndex converts the 1-based number shown by 'show' to an index
func parseMessageIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid message number %q (use the number shown by 'uicopy show')", arg)
	}
	return n - 1, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
