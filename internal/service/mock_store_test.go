package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/linkdeck/internal/model"
)

// mockStore implements store.DocumentStore in memory. Load and Save exchange
// deep copies, like the real store does through its encode/decode cycle, so a
// service mutating a loaded document can never reach the "persisted" state
// without calling Save.
type mockStore struct {
	doc       *model.Document
	saveCount int
	loadErr   error
	saveErr   error
}

func newMockStore() *mockStore {
	return &mockStore{doc: model.NewDocument()}
}

func (m *mockStore) Load(_ context.Context) (*model.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return copyDoc(m.doc), nil
}

func (m *mockStore) Save(_ context.Context, doc *model.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = copyDoc(doc)
	m.saveCount++
	return nil
}

func copyDoc(doc *model.Document) *model.Document {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	out := &model.Document{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	out.EnsureShape()
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newScreenTestService(t *testing.T) (*ScreenService, *mockStore) {
	t.Helper()
	st := newMockStore()
	return NewScreenService(st, testLogger()), st
}

func newFolderTestService(t *testing.T) (*FolderService, *mockStore) {
	t.Helper()
	st := newMockStore()
	return NewFolderService(st, testLogger()), st
}
