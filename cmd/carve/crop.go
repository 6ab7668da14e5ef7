package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxtools/carve/pkg/core"
)

var (
	cropStructures []string
	cropDistance   float64
	cropInside     bool
)

var cropCmd = &cobra.Command{
	Use:   "crop <pattern> <crop-from-pattern>",
	Short: "Print a structure set cropped away from another, with clearance",
	Long: `Removes from the first selection everything within a clearance distance
of the second. By default the crop extends outside the second selection;
with --inside it extends inward instead.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc, _, err := seedService(ctx, cropStructures)
		if err != nil {
			fatal("Failed to seed workspace", err)
		}

		primary, err := selectAll(ctx, svc, args[:1])
		if err != nil {
			fatal("Failed to select structures", err)
		}
		from, err := selectAll(ctx, svc, args[1:])
		if err != nil {
			fatal("Failed to select structures", err)
		}

		var vol core.Volume
		if cropInside {
			vol, err = svc.CropExtendingInside(ctx, primary, from, cropDistance)
		} else {
			vol, err = svc.CropExtendingOutside(ctx, primary, from, cropDistance)
		}
		if err != nil {
			fatal("Crop failed", err)
		}
		if vol == nil {
			fmt.Println("empty")
			return
		}
		fmt.Println(vol)
	},
}

func init() {
	rootCmd.AddCommand(cropCmd)
	cropCmd.Flags().StringSliceVarP(&cropStructures, "structures", "s", nil, "Structure ids to seed the workspace with (append ! for high-res)")
	cropCmd.Flags().Float64VarP(&cropDistance, "distance", "d", 0, "Clearance distance in mm")
	cropCmd.Flags().BoolVar(&cropInside, "inside", false, "Extend the crop inside the second selection")
}
