// Package jsonfile implements store.DocumentStore on top of a single JSON
// file guarded by an advisory file lock.
//
// WHY A FLAT FILE AND NOT SQLITE?
// The document is small (a handful of folders, screens and assets), every
// operation wants the whole thing anyway, and the format doubles as a
// human-editable backup. The price is that writes are whole-file overwrites
// serialized by the lock — fine for one editor at a time, wrong for high
// write throughput.
//
// WHY TWO LOCKS?
// The OS advisory lock (gofrs/flock, flock(2) on Linux, LockFileEx on
// Windows) excludes other PROCESSES: a second server instance or a
// maintenance script editing the same file queues behind us. It does NOT
// exclude other goroutines — flock tracks ownership per *Flock value, so a
// second Lock() on the same value while it is already held short-circuits
// and returns immediately. The mutex closes that gap: goroutines within this
// process serialize on it, and only the holder touches the flock. Acquisition
// has no timeout — waiting is bounded only by whatever the current holder
// needs, which in practice is a few milliseconds.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/sakif/linkdeck/internal/model"
)

// Store persists the document as indented JSON at path, locking path+".lock"
// around every read and every write.
type Store struct {
	path   string
	mu     sync.Mutex // serializes goroutines; see the package doc
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time // injectable for expiry tests
}

// New creates a Store for the given file path, creating the parent directory
// if needed. The file itself is created lazily on first Load.
func New(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("jsonfile: creating data directory: %w", err)
	}
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Load reads the document under the lock.
//
// Three repair behaviours happen here, all deliberate:
//   - A missing file is bootstrapped to the empty document AND persisted,
//     still under the lock, so two racing first callers can't both "win" the
//     bootstrap with different content.
//   - An unparseable file is replaced in memory by an empty structure rather
//     than surfacing the error; the caller keeps working and the next Save
//     rewrites the file cleanly. Resilience over strictness, logged loudly.
//   - Screens are re-normalized and expired sessions dropped, so every
//     consumer sees the current shape no matter how old the stored record is.
//     Neither change touches the disk — Save is always explicit.
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("jsonfile: acquiring lock: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := model.NewDocument()
		if err := s.write(doc); err != nil {
			return nil, err
		}
		s.logger.Info("document bootstrapped", slog.String("path", s.path))
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: reading %s: %w", s.path, err)
	}

	doc := &model.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn("document unparseable, substituting empty structure",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		doc = &model.Document{}
	}

	doc.EnsureShape()

	for i, screen := range doc.Screens {
		doc.Screens[i] = model.NormalizeScreen(screen.AsRaw())
	}

	now := s.now()
	for hash, session := range doc.Sessions {
		if session.Expired(now) {
			delete(doc.Sessions, hash)
		}
	}

	return doc, nil
}

// Save overwrites the whole document under the lock. There is no merge path:
// load, mutate your copy, save it all back.
func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("jsonfile: acquiring lock: %w", err)
	}
	defer s.lock.Unlock()

	return s.write(doc)
}

// write marshals and writes the document. Callers must hold the lock.
func (s *Store) write(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encoding document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("jsonfile: writing %s: %w", s.path, err)
	}
	return nil
}
