package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ReadFileFunc reads one selected file as text
type ReadFileFunc func(ctx context.Context, path string) (string, error)

// ReadTextFile reads a file from disk
func ReadTextFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GuidelineStore owns the uploaded style guidelines and the pending file selection
type GuidelineStore struct {
	mu         sync.Mutex
	store      Store
	guidelines []Guideline
	pending    []string

	readFile ReadFileFunc
}

// LoadGuidelineStore reads the persisted guidelines
func LoadGuidelineStore(store Store) (*GuidelineStore, error) {
	gs := &GuidelineStore{store: store, readFile: ReadTextFile}
	if _, err := GetJSON(store, KeyGuidelines, &gs.guidelines); err != nil {
		return nil, fmt.Errorf("failed to load guidelines: %w", err)
	}
	return gs, nil
}

// List returns a copy of the guidelines in upload order
func (gs *GuidelineStore) List() []Guideline {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]Guideline(nil), gs.guidelines...)
}

// Select stages files for the next Upload, replacing any previous selection
func (gs *GuidelineStore) Select(paths ...string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.pending = append([]string(nil), paths...)
}

// Pending returns the staged files
func (gs *GuidelineStore) Pending() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]string(nil), gs.pending...)
}

// Upload reads every staged file concurrently and appends them in selection order.
// If any file cannot be read nothing is appended and the selection is kept.
func (gs *GuidelineStore) Upload(ctx context.Context) (int, error) {
	paths := gs.Pending()
	if len(paths) == 0 {
		return 0, nil
	}

	read := make([]Guideline, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			content, err := gs.readFile(gctx, path)
			if err != nil {
				return &FileReadError{Path: path, Err: err}
			}
			read[i] = Guideline{Name: filepath.Base(path), Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	next := append(append([]Guideline{}, gs.guidelines...), read...)
	if err := SetJSON(gs.store, KeyGuidelines, next); err != nil {
		return 0, fmt.Errorf("failed to save guidelines: %w", err)
	}
	gs.guidelines = next
	gs.pending = nil
	LogDebug("Uploaded %d guideline(s)", len(read))
	return len(read), nil
}

// Remove deletes the guideline at index; out-of-range indexes are ignored
func (gs *GuidelineStore) Remove(index int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if index < 0 || index >= len(gs.guidelines) {
		return nil
	}
	next := append(append([]Guideline{}, gs.guidelines[:index]...), gs.guidelines[index+1:]...)
	if err := SetJSON(gs.store, KeyGuidelines, next); err != nil {
		return fmt.Errorf("failed to save guidelines: %w", err)
	}
	gs.guidelines = next
	return nil
}
