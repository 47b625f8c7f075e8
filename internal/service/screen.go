package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/store"
)

// ScreenService handles screen persistence: save (upsert by id with slug
// disambiguation), delete, public lookup by slug, and stateless previews.
type ScreenService struct {
	store  store.DocumentStore
	logger *slog.Logger
}

// NewScreenService creates a ScreenService.
func NewScreenService(st store.DocumentStore, logger *slog.Logger) *ScreenService {
	return &ScreenService{store: st, logger: logger}
}

// Slugify turns a user-entered slug into its canonical URL-safe form:
// trimmed, lowercased, spaces replaced with hyphens. An empty result gets a
// short random token so every screen is always addressable.
func Slugify(s string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	if slug == "" {
		slug = model.NewSlugToken()
	}
	return slug
}

// Save normalizes and upserts a screen, returning the slug it was stored
// under (which may differ from the requested one).
//
// UPSERT RULES:
//   - A record whose id matches an existing screen replaces it in place,
//     keeping whatever slug the caller sent.
//   - A new record whose slug collides with an existing screen gets a random
//     "-xxxx" suffix so both remain independently reachable.
func (s *ScreenService) Save(ctx context.Context, raw model.RawScreen) (string, error) {
	raw.Slug = Slugify(raw.Slug)
	screen := model.NormalizeScreen(raw)

	doc, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	if i := doc.ScreenByID(screen.ID); i >= 0 {
		doc.Screens[i] = screen
		if err := s.store.Save(ctx, doc); err != nil {
			return "", err
		}
		s.logger.Info("screen updated",
			slog.String("id", screen.ID),
			slog.String("slug", screen.Slug),
		)
		return screen.Slug, nil
	}

	if doc.ScreenBySlug(screen.Slug) >= 0 {
		screen.Slug = screen.Slug + "-" + model.NewSlugSuffix()
	}
	doc.Screens = append(doc.Screens, screen)
	if err := s.store.Save(ctx, doc); err != nil {
		return "", err
	}

	s.logger.Info("screen created",
		slog.String("id", screen.ID),
		slog.String("slug", screen.Slug),
	)
	return screen.Slug, nil
}

// Delete removes a screen by id. Deleting an id that doesn't exist is not an
// error — the end state is the same either way.
func (s *ScreenService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "screen id is required")
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Screens[:0]
	for _, screen := range doc.Screens {
		if screen.ID != id {
			kept = append(kept, screen)
		}
	}
	doc.Screens = kept

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("screen deleted", slog.String("id", id))
	return nil
}

// BySlug returns the screen published under the given slug. The result is
// fully normalized; callers can render it without further null checks.
func (s *ScreenService) BySlug(ctx context.Context, slug string) (*model.Screen, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := doc.ScreenBySlug(slug)
	if i < 0 {
		return nil, apperror.NotFound("screen", slug)
	}

	screen := doc.Screens[i]
	return &screen, nil
}

// List returns all screens.
func (s *ScreenService) List(ctx context.Context) ([]model.Screen, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Screens, nil
}

// Preview normalizes a raw screen without touching the store, for rendering
// unsaved work-in-progress.
func (s *ScreenService) Preview(raw model.RawScreen) model.Screen {
	return model.NormalizeScreen(raw)
}
