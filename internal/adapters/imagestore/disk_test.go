package imagestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"damq_travel/internal/adapters/imagestore"
)

func TestDisk_SaveThenDelete(t *testing.T) {
	dir := t.TempDir()
	store := imagestore.NewDisk(dir, "/uploads")
	ctx := context.Background()

	url, err := store.Save(ctx, "svaneti trek.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/tours/") {
		t.Fatalf("url: %q", url)
	}
	if strings.Contains(url, " ") {
		t.Fatalf("unsanitized filename in url: %q", url)
	}

	rel := strings.TrimPrefix(url, "/uploads/")
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "jpegbytes" {
		t.Fatalf("content: %q", b)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Fatal("file should be gone")
	}
}

func TestDisk_DeleteIsForgiving(t *testing.T) {
	store := imagestore.NewDisk(t.TempDir(), "/uploads")
	ctx := context.Background()

	// already gone
	if err := store.Delete(ctx, "/uploads/tours/1_gone.jpg"); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	// not ours at all
	if err := store.Delete(ctx, "https://placehold.co/80x60/1a1a2e/ffffff?text=IMG"); err != nil {
		t.Fatalf("external url: %v", err)
	}
}

func TestDisk_DeleteRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	store := imagestore.NewDisk(dir, "/uploads")

	_ = store.Delete(context.Background(), "/uploads/../victim.txt")
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("path traversal escaped the store")
	}
}
