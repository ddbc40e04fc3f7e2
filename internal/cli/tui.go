package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/tui"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive exercise carousel",
		Long: `Launch the TUI carousel for CalmNow.

The TUI provides:
- The six-exercise carousel with per-level durations
- A live breath pacer with optional audio cues
- Nature session playback with a video/audio switch
- The two-minute journal editor with prompts
- Streak milestones and one-key share cards`,
		Aliases: []string{"ui"},
		RunE:    runTuiCmd,
	}

	return cmd
}

func runTuiCmd(cmd *cobra.Command, args []string) error {
	st, cfgMgr, err := createStore()
	if err != nil {
		return err
	}

	if err := tui.Run(st, cfgMgr); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
