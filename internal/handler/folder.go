package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/linkdeck/internal/service"
)

// FolderHandler manages folder creation and deletion.
type FolderHandler struct {
	folders *service.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a FolderHandler.
func NewFolderHandler(folders *service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

// HandleCreate adds a folder.
//
// HTTP: POST /api/folders/create
// REQUEST BODY: {"name": "Campaigns"}
//
// Responds with the created folder record; a missing name falls back to a
// default, it is not an error.
func (h *FolderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	folder, err := h.folders.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, folder)
}

// HandleDelete removes a folder and reparents its screens.
//
// HTTP: POST /api/folders/delete
// REQUEST BODY: {"id": "..."}
//
// Deleting the default folder is a 400 — the service enforces the sentinel
// invariant and the error maps straight through writeError.
func (h *FolderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.folders.Delete(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
