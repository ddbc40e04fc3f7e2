package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/config"
	"github.com/calmhq/calm-cli/internal/store"
)

var dataDir string

// NewRootCmd creates the root command for the calm CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calm",
		Short: "CalmNow - Guided two-minute relaxation sessions in your terminal",
		Long: `CalmNow is a guided-relaxation companion: six short exercises (breathing,
posture, nature sounds, muscle release, cold exposure, journaling) run on a
countdown, and every journaling session feeds a streak you can share as a card.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// When no subcommand is provided, launch TUI
			return runTuiCmd(cmd, args)
		},
	}

	// Set custom help template
	rootCmd.SetHelpTemplate(getCustomHelpTemplate())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for journal, history and config (default ~/.calm)")

	// Add subcommands with annotations for grouping

	// Sessions
	sessions := []*cobra.Command{
		addAnnotation(newStartCmd(), "sessions"),
		addAnnotation(newTuiCmd(), "sessions"),
	}

	// Journal & Stats
	journal := []*cobra.Command{
		addAnnotation(newStatsCmd(), "journal"),
		addAnnotation(newJournalCmd(), "journal"),
	}

	// Sharing & Media
	sharing := []*cobra.Command{
		addAnnotation(newCardCmd(), "sharing"),
		addAnnotation(newCacheCmd(), "sharing"),
	}

	for _, cmd := range sessions {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range journal {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range sharing {
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

// resolveDataDir picks the data directory: the --data-dir flag when given,
// otherwise ~/.calm, falling back to ./.calm when home is unknown.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".calm"
	}
	return filepath.Join(home, ".calm")
}

// createStore creates the journal store and config manager backing every
// command, creating the data directory on first use.
func createStore() (*store.Manager, *config.Manager, error) {
	dir := resolveDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	st := store.NewManager(store.Config{DataDir: dir})
	cfgMgr := config.NewManager(dir)
	return st, cfgMgr, nil
}

// addAnnotation adds a group annotation to a command
func addAnnotation(cmd *cobra.Command, group string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations["group"] = group
	return cmd
}

// getCustomHelpTemplate returns a custom help template with organized command groups
func getCustomHelpTemplate() string {
	return `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}{{if .HasAvailableSubCommands}}

Sessions:{{range .Commands}}{{if and (eq .Annotations.group "sessions") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Journal & Stats:{{range .Commands}}{{if and (eq .Annotations.group "journal") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Sharing & Media:{{range .Commands}}{{if and (eq .Annotations.group "sharing") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Other Commands:{{range .Commands}}{{if and (or (not .Annotations.group) (eq .Name "help") (eq .Name "completion")) .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}

Workflow Examples:
  calm                                # Open the interactive carousel
  calm start breathing --level 2      # Run a 4-minute breathing session
  calm start journal --quick          # Two-minute journaling from the terminal
  calm stats                          # Streak, 7-day count and recent sessions
  calm journal export                 # Write the full journal transcript
  calm card --theme vibrant           # Render a share card PNG
  calm cache warm                     # Prefetch the nature session audio
`
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
