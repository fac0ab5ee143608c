package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestMoveCreatesParents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dest := filepath.Join(dir, "nested", "out", "final.mp4")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dest); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if Exists(src) {
		t.Fatal("source should be gone after move")
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.mp4")
	dest := filepath.Join(dir, "old.mp4")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Move(src, dest); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "new" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func stubCrossDevice(t *testing.T, remove func(string) error) {
	t.Helper()
	origRename, origRemove := rename, removeSource
	t.Cleanup(func() {
		rename, removeSource = origRename, origRemove
	})
	rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: unix.EXDEV}
	}
	if remove != nil {
		removeSource = remove
	}
}

func TestMoveCrossDeviceCopies(t *testing.T) {
	stubCrossDevice(t, nil)
	dir := t.TempDir()
	src := filepath.Join(dir, "av1_Movie.mp4")
	dest := filepath.Join(dir, "out", "Movie.mp4")
	if err := os.WriteFile(src, []byte("encoded"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dest); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if Exists(src) {
		t.Fatal("source should be removed after the copy")
	}
	if got, _ := os.ReadFile(dest); string(got) != "encoded" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveCrossDeviceRemovesDestWhenSourceStays(t *testing.T) {
	stubCrossDevice(t, func(string) error { return errors.New("read-only filesystem") })
	dir := t.TempDir()
	src := filepath.Join(dir, "av1_Movie.mp4")
	dest := filepath.Join(dir, "out", "Movie.mp4")
	if err := os.WriteFile(src, []byte("encoded"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dest); err == nil {
		t.Fatal("expected error when the source cannot be removed")
	}
	if Exists(dest) {
		t.Fatal("destination copy should be removed when the move fails")
	}
	if !Exists(src) {
		t.Fatal("source should be left in place")
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := Move(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRemoveIsNoopWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := Remove(filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	if err := Remove(""); err != nil {
		t.Fatalf("Remove empty: %v", err)
	}
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Exists(path) {
		t.Fatal("file should be removed")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o640); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nonexistent")
	dst := filepath.Join(dir, "dst.bin")

	err := CopyFileVerified(src, dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
