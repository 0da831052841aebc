package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReferenceKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"image/jpeg": "references/2024/03/b1.jpg",
		"image/webp": "references/2024/03/b1.webp",
		"":           "references/2024/03/b1.png",
	}
	for mime, want := range tests {
		if got := ReferenceKey("b1", mime, at); got != want {
			t.Fatalf("ReferenceKey(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestFileStoreWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	key, err := store.Write(context.Background(), "/references/2024/03/b1.png", []byte("img"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "references/2024/03/b1.png" {
		t.Fatalf("key = %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, "references", "2024", "03", "b1.png"))
	if err != nil || string(data) != "img" {
		t.Fatalf("read back = %q, %v", data, err)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	for _, key := range []string{"", "../escape.png", "a/../../escape.png", "."} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
