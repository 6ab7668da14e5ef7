package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voxtools/carve/pkg/plan"
)

var (
	listJSON bool
	listYAML bool
)

var listCmd = &cobra.Command{
	Use:   "list <plan.yaml>",
	Short: "Run a plan and list the structures left in the workspace",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := plan.Load(args[0])
		if err != nil {
			fatal("Failed to load plan", err)
		}

		runner := plan.NewRunner(slog.Default(), nil)
		_, ws, err := runner.Run(context.Background(), p)
		if err != nil {
			fatal("Plan failed", err)
		}

		snapshot := ws.Snapshot()

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(snapshot); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}
		if listYAML {
			encoder := yaml.NewEncoder(os.Stdout)
			defer encoder.Close()
			if err := encoder.Encode(snapshot); err != nil {
				fatal("Failed to encode YAML", err)
			}
			return
		}

		for _, info := range snapshot {
			res := ""
			if info.HighRes {
				res = " [high-res]"
			}
			fmt.Printf("%-16s %-10s%s %s\n", info.ID, info.Kind, res, info.Volume)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
}
