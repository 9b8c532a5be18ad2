package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelgrab/internal/config"
	"reelgrab/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent downloads",
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

func historyRun(cmd *cobra.Command, args []string) error {
	path, err := config.HistoryPath()
	if err != nil {
		return fmt.Errorf("locating history database: %w", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No downloads recorded yet.")
		return nil
	}

	for _, rec := range records {
		owner := rec.Owner
		if owner == "" {
			owner = "unknown"
		}
		fmt.Printf("%s  %-12s @%-20s %s\n",
			rec.DownloadedAt.Local().Format("2006-01-02 15:04"),
			rec.Shortcode, owner, rec.FilePath)
	}
	return nil
}
