package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/model"
)

func TestFolderCreate(t *testing.T) {
	svc, st := newFolderTestService(t)
	ctx := context.Background()

	folder, err := svc.Create(ctx, "Campaigns")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if folder.ID == "" {
		t.Error("created folder must get an id")
	}
	if folder.Name != "Campaigns" {
		t.Errorf("name: got %q", folder.Name)
	}
	if _, ok := st.doc.FolderByID(folder.ID); !ok {
		t.Error("folder not persisted")
	}
}

func TestFolderCreate_BlankNameFallsBack(t *testing.T) {
	svc, _ := newFolderTestService(t)

	folder, err := svc.Create(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if folder.Name != DefaultNewFolderName {
		t.Errorf("name: got %q, want %q", folder.Name, DefaultNewFolderName)
	}
}

func TestFolderDelete_ReparentsScreens(t *testing.T) {
	svc, st := newFolderTestService(t)
	ctx := context.Background()

	folder, err := svc.Create(ctx, "Doomed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	st.doc.Screens = append(st.doc.Screens,
		model.NormalizeScreen(model.RawScreen{ID: "s1", Slug: "one", FolderID: folder.ID}),
		model.NormalizeScreen(model.RawScreen{ID: "s2", Slug: "two", FolderID: "elsewhere"}),
	)

	if err := svc.Delete(ctx, folder.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := st.doc.FolderByID(folder.ID); ok {
		t.Error("folder still present after delete")
	}
	if got := st.doc.Screens[st.doc.ScreenByID("s1")].FolderID; got != model.DefaultFolderID {
		t.Errorf("orphaned screen folder: got %q, want %q", got, model.DefaultFolderID)
	}
	if got := st.doc.Screens[st.doc.ScreenByID("s2")].FolderID; got != "elsewhere" {
		t.Errorf("unrelated screen reparented: got %q", got)
	}
}

func TestFolderDelete_DefaultFolderRejected(t *testing.T) {
	svc, st := newFolderTestService(t)

	err := svc.Delete(context.Background(), model.DefaultFolderID)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if st.saveCount != 0 {
		t.Error("rejected delete must not write")
	}
	if _, ok := st.doc.FolderByID(model.DefaultFolderID); !ok {
		t.Error("default folder must survive")
	}
}

func TestFolderDelete_UnknownIDSucceeds(t *testing.T) {
	svc, _ := newFolderTestService(t)

	if err := svc.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("deleting an unknown folder must succeed, got %v", err)
	}
}

func TestFolderDelete_BlankIDRejected(t *testing.T) {
	svc, _ := newFolderTestService(t)

	if err := svc.Delete(context.Background(), "  "); err == nil {
		t.Error("blank id must be rejected")
	}
}
