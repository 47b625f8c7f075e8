package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/service"
)

// ScreenHandler manages the JSON CRUD surface for screens. Rendering
// endpoints (/s/{slug}, preview, /manager) live on PageHandler — this
// handler only ever speaks JSON.
type ScreenHandler struct {
	screens *service.ScreenService
	logger  *slog.Logger
}

// NewScreenHandler creates a ScreenHandler.
func NewScreenHandler(screens *service.ScreenService, logger *slog.Logger) *ScreenHandler {
	return &ScreenHandler{screens: screens, logger: logger}
}

// HandleSave upserts a screen.
//
// HTTP: POST /api/screens/save
// REQUEST BODY: {"id"?, "folder_id"?, "slug"?, "title"?, "theme"?, "links"?}
//
// The body is decoded into the loose RawScreen shape on purpose: old clients
// send partial records and the normalizer fills the gaps. The response
// carries the slug actually stored, which may have gained a collision suffix.
func (h *ScreenHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var raw model.RawScreen
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.logger.Warn("invalid screen JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	slug, err := h.screens.Save(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"slug":   slug,
	})
}

// HandleDelete removes a screen by id.
//
// HTTP: POST /api/screens/delete
// REQUEST BODY: {"id": "..."}
//
// Deleting an unknown id still answers {"status":"deleted"} — the caller
// asked for the screen to be gone, and it is.
func (h *ScreenHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.screens.Delete(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
