// Package handler contains the HTTP request handlers: thin glue between the
// router and the service layer. JSON endpoints live on the entity handlers;
// PageHandler owns everything that renders HTML.
package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/service"
)

// PageHandler renders the manager dashboard and public landing pages.
// Templates are parsed once at startup and reused on every request.
type PageHandler struct {
	templates *template.Template
	screens   *service.ScreenService
	folders   *service.FolderService
	assets    *service.AssetService
	logger    *slog.Logger
}

// NewPageHandler creates a PageHandler, parsing manager.html and
// landing.html from the template directory.
func NewPageHandler(
	templateDir string,
	screens *service.ScreenService,
	folders *service.FolderService,
	assets *service.AssetService,
	logger *slog.Logger,
) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "manager.html"),
		filepath.Join(templateDir, "landing.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		screens:   screens,
		folders:   folders,
		assets:    assets,
		logger:    logger,
	}, nil
}

// HandleManager serves the management dashboard.
//
// HTTP: GET /manager
// Auth: Required
func (h *PageHandler) HandleManager(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.List(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	screens, err := h.screens.List(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	assets, err := h.assets.List(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, "manager.html", map[string]interface{}{
		"Folders": folders,
		"Screens": screens,
		"Assets":  assets,
	})
}

// HandleView serves a published screen.
//
// HTTP: GET /s/{slug}
// Auth: none — this is the public, shareable URL.
func (h *PageHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	screen, err := h.screens.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("<h1>404 - screen not found</h1>"))
			return
		}
		h.renderError(w, err)
		return
	}

	h.render(w, "landing.html", map[string]interface{}{"Screen": screen})
}

// HandlePreview renders a screen from the request body without saving it.
//
// HTTP: POST /api/screens/preview
// Auth: Required
//
// The editor posts its unsaved state here and swaps the returned HTML into
// an iframe — same template as the public page, no persistence.
func (h *PageHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var raw model.RawScreen
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	screen := h.screens.Preview(raw)
	h.render(w, "landing.html", map[string]interface{}{"Screen": &screen})
}

// render executes a template, logging failures. Template errors after the
// first byte can't change the status line anymore — parse-time validation in
// NewPageHandler is what keeps this path safe.
func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, err error) {
	h.logger.Error("page handler error", slog.String("error", err.Error()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
