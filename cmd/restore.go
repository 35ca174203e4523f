package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nward/homerestore/internal/logger"
	"github.com/nward/homerestore/internal/progress"
	"github.com/nward/homerestore/internal/prompt"
	"github.com/nward/homerestore/internal/service"
	"github.com/nward/homerestore/internal/state"
)

var (
	restoreJobs   int
	restoreHome   string
	restoreDryRun bool
	restoreYes    bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-dir>",
	Short: "Restore the backup's XDG folders into the home directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir := restoreHome
		if homeDir == "" {
			homeDir = cfg.Restore.HomeDir
		}
		if homeDir == "" {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot determine home directory: %w", err)
			}
		}

		jobs := restoreJobs
		if !cmd.Flags().Changed("jobs") {
			jobs = cfg.Restore.Jobs
		}

		var journal *state.Manager
		if cfg.State.Enabled {
			var err error
			journal, err = state.NewManager(cfg.State.DataDir)
			if err != nil {
				logger.Get().Warn("run history disabled", "error", err)
			} else {
				defer journal.Close()
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		asker := prompt.NewTerminalAsker(os.Stdin, os.Stdout)
		reporter := progress.NewCallbackReporter(printProgress)

		svc := service.NewRestoreService(asker, reporter, journal, cfg.State.DataDir, func(format string, a ...any) {
			fmt.Printf(format, a...)
		})

		return svc.Run(ctx, service.Options{
			BackupDir: args[0],
			HomeDir:   homeDir,
			Jobs:      jobs,
			DryRun:    restoreDryRun,
			AssumeYes: restoreYes,
		})
	},
}

func printProgress(u progress.Update) {
	if u.Type != progress.UpdateDone && u.Type != progress.UpdateError {
		return
	}
	fmt.Printf("\r[%d/%d] %s (%s/s)   ",
		u.FilesCompleted, u.FilesTotal,
		humanize.IBytes(uint64(u.BytesCompleted)),
		humanize.IBytes(uint64(u.BytesPerSecond)))
	if u.FilesCompleted == u.FilesTotal {
		fmt.Println()
	}
}

func init() {
	restoreCmd.Flags().IntVar(&restoreJobs, "jobs", 4, "number of copy workers")
	restoreCmd.Flags().StringVar(&restoreHome, "home", "", "destination home directory (default: current user's home)")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "print the plan without copying anything")
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "skip confirmations and delete sources after restore")
	rootCmd.AddCommand(restoreCmd)
}
