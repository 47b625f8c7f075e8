package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/service"
)

// AssetHandler manages image uploads and the asset listing.
type AssetHandler struct {
	assets *service.AssetService
	logger *slog.Logger
}

// NewAssetHandler creates an AssetHandler.
func NewAssetHandler(assets *service.AssetService, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, logger: logger}
}

// HandleList returns every recorded asset.
//
// HTTP: GET /api/assets/list
// RESPONSE: {"assets": [{"id","name","url","kind"}, ...]}
func (h *AssetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assets.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Asset{"assets": assets})
}

// HandleUpload accepts one image as a multipart form file.
//
// HTTP: POST /api/assets/upload  (multipart field "file")
//
// MaxBytesReader caps the whole request body slightly above the asset limit
// so an oversized upload fails during the form parse instead of buffering
// unbounded data; the service then enforces the exact 10 MiB limit and the
// MIME/extension rules before writing anything.
func (h *AssetHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAssetBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "image too large (max 10 MiB)",
			})
			return
		}
		h.logger.Warn("invalid upload form", slog.String("error", err.Error()))
		http.Error(w, "multipart file field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	asset, err := h.assets.Upload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}
