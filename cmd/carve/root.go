package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxtools/carve"
	"github.com/voxtools/carve/pkg/adapters/mem"
	"github.com/voxtools/carve/pkg/core"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carve",
	Short: "A structure algebra for volumetric regions with margins, crops and booleans",
	Long: `Carve manipulates named volumetric structures the way treatment planning
scripts do: boolean set algebra plus geometric margins, decomposed into
engine-safe steps. The CLI runs against a symbolic in-memory engine, so
every command prints the expression a real geometry host would evaluate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// seedService builds a service over a fresh in-memory workspace populated
// with the given structure ids. Ids suffixed with "!" are marked high
// resolution (e.g. "PTV!").
func seedService(ctx context.Context, ids []string) (*carve.Service, *mem.Workspace, error) {
	ws := mem.NewWorkspace()
	svc, err := carve.New(
		carve.WithWorkspace(ws),
		carve.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		highRes := strings.HasSuffix(id, "!")
		id = strings.TrimSuffix(id, "!")
		s, err := ws.Add(ctx, core.KindOrgan, id)
		if err != nil {
			return nil, nil, err
		}
		if highRes {
			s.(*mem.Structure).MarkHighRes()
		}
	}
	return svc, ws, nil
}

// selectAll resolves each pattern against the workspace, in order.
func selectAll(ctx context.Context, svc *carve.Service, patterns []string) ([]core.Structure, error) {
	var out []core.Structure
	for _, pattern := range patterns {
		matches, err := svc.Select(ctx, pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}
