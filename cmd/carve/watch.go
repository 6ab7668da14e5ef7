package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/voxtools/carve/pkg/adapters/lifecycle"
	"github.com/voxtools/carve/pkg/plan"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <plan.yaml>",
	Short: "Re-run a plan whenever it changes on disk",
	Long: `Watch a plan file and re-execute it on every save, printing one line
per run. Stops on Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events := make(chan plan.Event)
		runner := plan.NewRunner(slog.Default(), nil)
		watcher := plan.NewWatcher(args[0], runner, events, slog.Default())

		if err := watcher.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		source := lifecycleadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Printf("Watching %s (Ctrl-C to stop)...\n", args[0])
		for {
			select {
			case <-ctx.Done():
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := watcher.Stop(stopCtx); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: watcher did not stop cleanly: %v\n", err)
				}
				fmt.Println("Stopped.")
				return
			case e, ok := <-source.Events():
				if !ok {
					return
				}
				fmt.Println(e.String())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
