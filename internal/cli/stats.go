package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/operations"
	"github.com/calmhq/calm-cli/internal/text"
)

func newStatsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streak, 7-day count and recent sessions",
		Long: `Show journaling stats derived fresh from the data files:
- Streak of consecutive calendar days with a journal entry
- Entry count over the rolling 7-day window
- The most recent journal entry
- Recent non-journal sessions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsCmd(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of recent sessions to show")

	return cmd
}

func runStatsCmd(limit int) error {
	st, cfgMgr, err := createStore()
	if err != nil {
		return err
	}
	settings, err := cfgMgr.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	format := operations.NewSummaryFormat(text.ForLang(settings.Lang))

	fmt.Println(format.FormatStats(st.Stats()))

	if e, ok := st.LastJournal(); ok {
		fmt.Println(format.FormatLastJournal(e))
	}

	fmt.Println()
	fmt.Println(format.FormatHistoryList(st.History(), limit))

	return nil
}
