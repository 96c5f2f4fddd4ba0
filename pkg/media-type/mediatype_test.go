package mediatype

import "testing"

func TestClassifyKnownExtension(t *testing.T) {
	table := NewTable(nil)
	mt, ok := table.Classify("index.html")
	if !ok || mt != "text/html" {
		t.Fatalf("Classified as %s (%v)", mt, ok)
	}
}

func TestClassifyUsesLastDot(t *testing.T) {
	table := NewTable(nil)
	mt, ok := table.Classify("archive.tar.txt")
	if !ok || mt != "text/plain" {
		t.Fatalf("Classified as %s (%v)", mt, ok)
	}
}

func TestClassifyUnknownExtension(t *testing.T) {
	table := NewTable(nil)
	if _, ok := table.Classify("binary.exe"); ok {
		t.Fatal("Expected unknown extension to miss")
	}
}

func TestClassifyNoExtension(t *testing.T) {
	table := NewTable(nil)
	if _, ok := table.Classify("Makefile"); ok {
		t.Fatal("Expected missing extension to miss")
	}
}

func TestClassifyExtraEntries(t *testing.T) {
	table := NewTable(map[string]string{".md": "text/markdown"})
	mt, ok := table.Classify("README.md")
	if !ok || mt != "text/markdown" {
		t.Fatalf("Classified as %s (%v)", mt, ok)
	}
}
