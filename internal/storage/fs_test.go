package storage

import (
	"strings"
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempVault(t)
	if err := s.Write("a/b/c.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a/b/c.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestMove(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("old.md", []byte("data"))
	if err := s.Move("old.md", "sub/new.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := s.Read("sub/new.md")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("old.md"); err == nil {
		t.Error("old path should not exist")
	}
}

func TestList(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("not-a-note.txt", []byte("skip"))

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(metas), metas)
	}
}

func TestList_SkipsBackupDir(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	if _, err := s.Backup("a.md"); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, m := range metas {
		if strings.Contains(m.Path, DefaultBackupDir) {
			t.Errorf("backup file leaked into listing: %s", m.Path)
		}
	}
	if len(metas) != 1 {
		t.Errorf("len = %d, want 1", len(metas))
	}
}

func TestBackup_ByteIdenticalCopy(t *testing.T) {
	s := tempVault(t)
	content := []byte("---\ntitle: X\n---\nbody\n")
	_ = s.Write("x.md", content)

	backupPath, err := s.Backup("x.md")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasPrefix(backupPath, DefaultBackupDir+"/") {
		t.Errorf("backup path = %q, want under %s/", backupPath, DefaultBackupDir)
	}
	if !strings.Contains(backupPath, "x_backup_") {
		t.Errorf("backup path = %q, want stem + _backup_ + timestamp", backupPath)
	}
	got, err := s.Read(backupPath)
	if err != nil {
		t.Fatalf("Read backup: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("backup content = %q, want %q", got, content)
	}
}

func TestBackup_SameSecondDoesNotClobber(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("x.md", []byte("v1"))
	first, err := s.Backup("x.md")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	_ = s.Write("x.md", []byte("v2"))
	second, err := s.Backup("x.md")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if first == second {
		t.Fatalf("second backup reused path %q", first)
	}
	got, _ := s.Read(first)
	if string(got) != "v1" {
		t.Errorf("first backup overwritten: %q", got)
	}
}

func TestBackup_MissingFile(t *testing.T) {
	s := tempVault(t)
	if _, err := s.Backup("nope.md"); err == nil {
		t.Error("expected error backing up missing file")
	}
}

func TestSafePath_RejectsTraversal(t *testing.T) {
	s := tempVault(t)
	if _, err := s.Read("../outside.md"); err == nil {
		t.Error("expected traversal rejection")
	}
	if err := s.Write("../../evil.md", []byte("x")); err == nil {
		t.Error("expected traversal rejection on write")
	}
}
