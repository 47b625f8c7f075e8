package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sakif/linkdeck/internal/apperror"
)

func newAssetTestService(t *testing.T) (*AssetService, *mockStore, string) {
	t.Helper()
	dir := t.TempDir()
	st := newMockStore()
	svc, err := NewAssetService(st, dir, testLogger())
	if err != nil {
		t.Fatalf("NewAssetService: %v", err)
	}
	return svc, st, dir
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading uploads dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAssetUpload(t *testing.T) {
	svc, st, dir := newAssetTestService(t)
	ctx := context.Background()

	content := []byte("fake png bytes")
	asset, err := svc.Upload(ctx, "logo.png", "image/png", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.Name != "logo.png" {
		t.Errorf("name: got %q", asset.Name)
	}
	if asset.Kind != "image" {
		t.Errorf("kind: got %q", asset.Kind)
	}
	if !strings.HasPrefix(asset.URL, "/assets/") || !strings.HasSuffix(asset.URL, ".png") {
		t.Errorf("url: got %q", asset.URL)
	}
	if strings.Contains(asset.URL, "logo") {
		t.Error("stored filename must not derive from the client filename")
	}

	files := uploadedFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("uploads dir: got %v, want exactly one file", files)
	}
	data, err := os.ReadFile(filepath.Join(dir, files[0]))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("stored bytes differ from uploaded bytes")
	}

	if len(st.doc.Assets) != 1 || st.doc.Assets[0].ID != asset.ID {
		t.Errorf("asset record not persisted: %+v", st.doc.Assets)
	}
}

func TestAssetUpload_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
	}{
		{"non-image mime", "doc.png", "application/pdf", 10},
		{"disallowed extension", "anim.gif", "image/gif", 10},
		{"no extension", "raw", "image/png", 10},
		{"declared size over limit", "big.png", "image/png", MaxAssetBytes + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, dir := newAssetTestService(t)

			_, err := svc.Upload(context.Background(), tt.filename, tt.contentType, tt.size, bytes.NewReader([]byte("x")))
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}

			if files := uploadedFiles(t, dir); len(files) != 0 {
				t.Errorf("rejected upload left files behind: %v", files)
			}
			if len(st.doc.Assets) != 0 {
				t.Error("rejected upload recorded an asset")
			}
		})
	}
}

func TestAssetUpload_ActualSizeOverLimit(t *testing.T) {
	svc, _, dir := newAssetTestService(t)

	// Declared size lies; the read cap must still catch the oversized body.
	body := bytes.NewReader(make([]byte, MaxAssetBytes+1))
	_, err := svc.Upload(context.Background(), "big.png", "image/png", 100, body)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if files := uploadedFiles(t, dir); len(files) != 0 {
		t.Errorf("rejected upload left files behind: %v", files)
	}
}

func TestAssetList(t *testing.T) {
	svc, _, _ := newAssetTestService(t)
	ctx := context.Background()

	assets, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("expected empty list, got %+v", assets)
	}

	if _, err := svc.Upload(ctx, "a.jpg", "image/jpeg", 1, bytes.NewReader([]byte("j"))); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	assets, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 1 {
		t.Errorf("expected one asset, got %+v", assets)
	}
}
