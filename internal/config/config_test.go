package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), ".calm"))

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s != Defaults() {
		t.Errorf("Load() = %+v, want defaults %+v", s, Defaults())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".calm")
	m := NewManager(dir)

	want := Settings{Level: 3, Muted: true, Lang: "id", CardTheme: "vibrant"}
	if err := m.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".calm")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	raw := "level: 9\nmuted: false\nlang: fr\ncard_theme: neon\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Level != MaxLevel {
		t.Errorf("Level = %d, want clamped %d", s.Level, MaxLevel)
	}
	if s.Lang != "en" {
		t.Errorf("Lang = %q, want fallback en", s.Lang)
	}
	if s.CardTheme != "pastel" {
		t.Errorf("CardTheme = %q, want fallback pastel", s.CardTheme)
	}
}
