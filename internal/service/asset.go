package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/store"
)

// MaxAssetBytes caps uploaded images at 10 MiB.
const MaxAssetBytes = 10 << 20

// allowedExtensions are the only file extensions accepted for upload.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// AssetService stores uploaded images on disk and records them in the
// document. Files are written under uploadsDir as "<id><ext>" — the
// uploader's filename is kept only as display metadata, never as a path, so
// a hostile filename can't escape the uploads directory.
type AssetService struct {
	store      store.DocumentStore
	uploadsDir string
	logger     *slog.Logger
}

// NewAssetService creates an AssetService, making sure the uploads directory
// exists.
func NewAssetService(st store.DocumentStore, uploadsDir string, logger *slog.Logger) (*AssetService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("service/asset: creating uploads directory: %w", err)
	}
	return &AssetService{store: st, uploadsDir: uploadsDir, logger: logger}, nil
}

// Upload validates and stores one image.
//
// ALL validation runs before anything touches the disk: a rejected upload
// must leave no partial file behind. declaredSize is what the client claims
// (the multipart header); the read is capped independently so a lying client
// can't smuggle a bigger body past the check.
func (s *AssetService) Upload(ctx context.Context, filename, contentType string, declaredSize int64, file io.Reader) (*model.Asset, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.ValidationFailed("file", "only images can be uploaded")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, apperror.ValidationFailed("file", fmt.Sprintf("extension not allowed: %s", ext))
	}

	if declaredSize > MaxAssetBytes {
		return nil, apperror.ValidationFailed("file", "image too large (max 10 MiB)")
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("service/asset: reading upload: %w", err)
	}
	if len(content) > MaxAssetBytes {
		return nil, apperror.ValidationFailed("file", "image too large (max 10 MiB)")
	}

	id := xid.New().String()
	safeName := id + ext
	path := filepath.Join(s.uploadsDir, safeName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("service/asset: writing %s: %w", path, err)
	}

	asset := model.Asset{
		ID:   id,
		Name: filename,
		URL:  "/assets/" + safeName,
		Kind: "image",
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Assets = append(doc.Assets, asset)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("asset uploaded",
		slog.String("id", asset.ID),
		slog.String("name", asset.Name),
		slog.Int("bytes", len(content)),
	)
	return &asset, nil
}

// List returns all recorded assets.
func (s *AssetService) List(ctx context.Context) ([]model.Asset, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Assets, nil
}
