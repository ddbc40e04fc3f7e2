package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/calmhq/calm-cli/internal/types"
)

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help error = %v", err)
	}

	output := buf.String()
	expectedStrings := []string{
		"CalmNow",
		"start",
		"stats",
		"journal",
		"card",
		"cache",
		"tui",
		"--data-dir",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Help output missing expected string: %q", expected)
		}
	}
}

func TestRootCmd_InvalidCommand(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"invalid-command"})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestNewCommands(t *testing.T) {
	commands := []string{
		"start",
		"stats",
		"journal",
		"card",
		"cache",
		"tui",
	}

	rootCmd := NewRootCmd()

	for _, cmdName := range commands {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == cmdName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Command %q not found in root command", cmdName)
		}
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		arg     string
		want    types.SlotID
		wantErr bool
	}{
		{"breathing", types.SlotBreathing, false},
		{"journal", types.SlotJournal, false},
		{"3", types.SlotNature, false},
		{"1", types.SlotBreathing, false},
		{"6", types.SlotJournal, false},
		{"0", 0, true},
		{"7", 0, true},
		{"yoga", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSlot(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSlot(%q) expected error, got %v", tt.arg, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSlot(%q) error = %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSlot(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
