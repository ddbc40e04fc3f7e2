package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/mediacache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline media cache",
		Long: `Manage the offline media cache in the data directory.

The cache keeps the ambient nature audio (and any extra assets you warm)
available without a network connection. The nature video streams live from
YouTube and is never cached.`,
	}

	cmd.AddCommand(newCacheWarmCmd())
	cmd.AddCommand(newCacheCleanCmd())

	return cmd
}

func newCacheWarmCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "warm [url...]",
		Short: "Prefetch media assets for offline use",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheWarmCmd(args, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall fetch deadline")

	return cmd
}

func runCacheWarmCmd(extra []string, timeout time.Duration) error {
	cache, err := mediacache.Open(resolveDataDir())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	urls := append([]string{mediacache.NatureAudioURL}, extra...)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stored, firstErr := cache.Precache(ctx, urls)
	fmt.Printf("Cached %d of %d asset(s) in %s\n", stored, len(urls), cache.Dir())
	if firstErr != nil {
		return fmt.Errorf("some assets failed: %w", firstErr)
	}
	return nil
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Drop every cached asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := mediacache.Open(resolveDataDir())
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}
			if err := cache.Clean(); err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}
			fmt.Println("Cache cleaned.")
			return nil
		},
	}
}
