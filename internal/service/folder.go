package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/store"
)

// DefaultNewFolderName is used when a create request carries no name.
const DefaultNewFolderName = "New Folder"

// FolderService handles folder creation and deletion. Folders are pure
// grouping — the interesting rule is that the "default" folder is a sentinel
// that can never be removed, and deleting any other folder reparents its
// screens there.
type FolderService struct {
	store  store.DocumentStore
	logger *slog.Logger
}

// NewFolderService creates a FolderService.
func NewFolderService(st store.DocumentStore, logger *slog.Logger) *FolderService {
	return &FolderService{store: st, logger: logger}
}

// Create adds a folder with a fresh id.
func (s *FolderService) Create(ctx context.Context, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultNewFolderName
	}

	folder := model.Folder{ID: xid.New().String(), Name: name}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Folders = append(doc.Folders, folder)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		slog.String("id", folder.ID),
		slog.String("name", folder.Name),
	)
	return &folder, nil
}

// Delete removes a folder and reassigns its screens to the default folder.
//
// Deleting the default folder is rejected outright — the invariant that it
// always exists is what makes reparenting safe. Deleting an id that doesn't
// exist succeeds: the end state (no such folder) already holds.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "folder id is required")
	}
	if id == model.DefaultFolderID {
		return apperror.ValidationFailed("id", "the default folder cannot be deleted")
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Folders[:0]
	for _, folder := range doc.Folders {
		if folder.ID != id {
			kept = append(kept, folder)
		}
	}
	doc.Folders = kept

	reparented := 0
	for i, screen := range doc.Screens {
		if screen.FolderID == id {
			doc.Screens[i].FolderID = model.DefaultFolderID
			reparented++
		}
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		slog.String("id", id),
		slog.Int("screensReparented", reparented),
	)
	return nil
}

// List returns all folders.
func (s *FolderService) List(ctx context.Context) ([]model.Folder, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Folders, nil
}
