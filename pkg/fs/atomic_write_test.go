package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_AtomicWriter_WriteWithDefaults_Creates_New_File(t *testing.T) {
	w := NewAtomicWriter(NewReal())
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := w.WriteWithDefaults(path, strings.NewReader("hello")); err != nil {
		t.Fatalf("WriteWithDefaults: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(got), "hello"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func Test_AtomicWriter_WriteWithDefaults_Overwrites_Existing_File(t *testing.T) {
	w := NewAtomicWriter(NewReal())
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := os.WriteFile(path, []byte("stale data that is longer than the replacement"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := w.WriteWithDefaults(path, strings.NewReader("fresh")); err != nil {
		t.Fatalf("WriteWithDefaults: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(got), "fresh"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func Test_AtomicWriter_WriteWithDefaults_Leaves_No_Temp_File_Behind(t *testing.T) {
	w := NewAtomicWriter(NewReal())
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := w.WriteWithDefaults(path, strings.NewReader("hello")); err != nil {
		t.Fatalf("WriteWithDefaults: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if got, want := len(entries), 1; got != want {
		t.Fatalf("entries=%d, want=%d", got, want)
	}

	if got, want := entries[0].Name(), "report.json"; got != want {
		t.Fatalf("entry=%q, want=%q", got, want)
	}
}

func Test_AtomicWriter_Write_Rejects_Empty_Path(t *testing.T) {
	w := NewAtomicWriter(NewReal())

	err := w.Write("", strings.NewReader("x"), w.DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error for an empty path")
	}
}

func Test_AtomicWriter_Write_Rejects_Zero_Perm(t *testing.T) {
	w := NewAtomicWriter(NewReal())
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	err := w.Write(path, strings.NewReader("x"), AtomicWriteOptions{SyncDir: true})
	if err == nil {
		t.Fatalf("expected an error for a zero Perm")
	}
}

func Test_NewAtomicWriter_Panics_On_Nil_FS(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a nil fs")
		}
	}()

	NewAtomicWriter(nil)
}

func Test_AtomicWriter_Write_When_DirDoesNotExist(t *testing.T) {
	w := NewAtomicWriter(NewReal())
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-subdir", "report.json")

	err := w.WriteWithDefaults(path, strings.NewReader("x"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want a wrapped os.ErrNotExist", err)
	}
}
