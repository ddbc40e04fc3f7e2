package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/export"
	"github.com/calmhq/calm-cli/internal/operations"
	"github.com/calmhq/calm-cli/internal/text"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List or export journal entries",
	}

	cmd.AddCommand(newJournalListCmd())
	cmd.AddCommand(newJournalExportCmd())

	return cmd
}

func newJournalListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List journal entries, newest first",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalListCmd(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show (0 for all)")

	return cmd
}

func runJournalListCmd(limit int) error {
	st, cfgMgr, err := createStore()
	if err != nil {
		return err
	}
	settings, err := cfgMgr.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	pack := text.ForLang(settings.Lang)
	format := operations.NewSummaryFormat(pack)

	entries := st.Journal()
	if len(entries) == 0 {
		fmt.Println("—")
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for _, e := range entries {
		fmt.Println(format.FormatLastJournal(e))
	}

	return nil
}

func newJournalExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full journal transcript to a text file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalExportCmd(out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", export.TranscriptFilename, "Output file path")

	return cmd
}

func runJournalExportCmd(out string) error {
	st, _, err := createStore()
	if err != nil {
		return err
	}

	entries := st.Journal()
	if len(entries) == 0 {
		return fmt.Errorf("no journal entries to export")
	}

	if err := export.WriteTranscript(out, entries); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), out)
	return nil
}
