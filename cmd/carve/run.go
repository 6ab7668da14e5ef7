package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxtools/carve/pkg/plan"
)

var (
	runJSON bool
)

var runCmd = &cobra.Command{
	Use:   "run <plan.yaml>",
	Short: "Execute a plan file once and print the result of each step",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := plan.Load(args[0])
		if err != nil {
			fatal("Failed to load plan", err)
		}

		runner := plan.NewRunner(slog.Default(), nil)
		results, _, err := runner.Run(context.Background(), p)
		if err != nil {
			fatal("Plan failed", err)
		}

		if runJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(results); err != nil {
				fatal("Failed to encode results", err)
			}
			return
		}

		for _, res := range results {
			label := res.Output
			if label == "" {
				label = "(discarded)"
			}
			if res.Empty {
				fmt.Printf("%d %-12s %s -> empty\n", res.Step, res.Op, label)
				continue
			}
			fmt.Printf("%d %-12s %s = %s\n", res.Step, res.Op, label, res.Volume)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output in JSON format")
}
