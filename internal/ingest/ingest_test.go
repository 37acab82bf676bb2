package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay one.txt")
	if err := os.WriteFile(path, []byte("Some submitted text."), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	sub, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if sub.Owner != "essay one" {
		t.Fatalf("owner = %q, want %q", sub.Owner, "essay one")
	}
	if sub.Text != "Some submitted text." {
		t.Fatalf("unexpected text %q", sub.Text)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.exe")
	if err := os.WriteFile(path, []byte{0x00}, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected unsupported file type error")
	}
}

func TestLoadFileDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	if err := os.WriteFile(path, buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Hello world.</w:t></w:r></w:p></w:body></w:document>`), 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	sub, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !strings.Contains(sub.Text, "Hello world.") {
		t.Fatalf("expected extracted text, got %q", sub.Text)
	}
	if sub.Owner != "report" {
		t.Fatalf("owner = %q, want report", sub.Owner)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"zeta.txt":  "last alphabetically",
		"alpha.md":  "first alphabetically",
		"notes.ini": "skipped entirely",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	subs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].Owner != "alpha" || subs[1].Owner != "zeta" {
		t.Fatalf("submissions not sorted by owner: %s, %s", subs[0].Owner, subs[1].Owner)
	}
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return b.Bytes()
}
