// Package export writes journal transcripts and share-card images to disk
// and puts share captions on the clipboard.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/calmhq/calm-cli/internal/types"
)

// TranscriptFilename is the default name for a full journal export.
const TranscriptFilename = "CalmNow_Journal.txt"

// Transcript renders the journal as plain text, one block per entry,
// separated by a rule.
func Transcript(entries []types.JournalEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] Lv %d • %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Level, e.Mode)
		fmt.Fprintf(&b, "Label: %s\n", e.Label)
		fmt.Fprintf(&b, "Prompt: %s\n", e.Prompt)
		b.WriteString(e.Text)
		b.WriteString("\n---\n")
	}
	return b.String()
}

// WriteTranscript writes the journal transcript to path, creating parent
// directories as needed.
func WriteTranscript(path string, entries []types.JournalEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Transcript(entries)), 0644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// CopyCaption puts the share caption on the system clipboard. Headless
// environments have no clipboard; the caller treats failure as advisory.
func CopyCaption(caption string) error {
	return clipboard.WriteAll(caption)
}
