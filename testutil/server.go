package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is what the completion server received
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]interface{}
}

// CompletionServer is a fake chat completions endpoint
type CompletionServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	release  chan struct{}
}

// CompletionReply renders a successful completion body
func CompletionReply(content string) string {
	data, _ := json.Marshal(map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{"message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	})
	return string(data)
}

// NewCompletionServer starts a server that answers every request with status and body
func NewCompletionServer(t *testing.T, status int, body string) *CompletionServer {
	t.Helper()
	cs := &CompletionServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		}
		_ = json.Unmarshal(raw, &rec.Body)

		cs.mu.Lock()
		cs.requests = append(cs.requests, rec)
		release := cs.release
		cs.mu.Unlock()

		if release != nil {
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(cs.Close)
	return cs
}

// Hold makes subsequent responses wait until the returned function is called.
// Held responses are released when the test ends.
func (cs *CompletionServer) Hold(t *testing.T) func() {
	t.Helper()
	ch := make(chan struct{})
	cs.mu.Lock()
	cs.release = ch
	cs.mu.Unlock()
	var once sync.Once
	release := func() { once.Do(func() { close(ch) }) }
	t.Cleanup(release)
	return release
}

// Requests returns the requests received so far
func (cs *CompletionServer) Requests() []RecordedRequest {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]RecordedRequest(nil), cs.requests...)
}
