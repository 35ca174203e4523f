package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nward/homerestore/internal/state"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past restore runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.State.Enabled {
			return fmt.Errorf("run history is disabled in the configuration")
		}

		journal, err := state.NewManager(cfg.State.DataDir)
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.History(historyN)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("no restores recorded yet")
			return nil
		}

		for _, r := range records {
			status := "✓"
			if r.Status == "failed" || r.Status == "partial" {
				status = "✗"
			}

			fmt.Printf("%s [%s] %-8s %4d files %10s %2d conflicts  %s -> %s\n",
				status,
				r.StartTime.Format("2006-01-02 15:04:05"),
				r.Status,
				r.Files,
				humanize.IBytes(uint64(r.Bytes)),
				r.Conflicts,
				r.BackupRoot,
				r.HomeDir,
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
