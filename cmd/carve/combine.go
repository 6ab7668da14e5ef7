package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxtools/carve/pkg/core"
)

var (
	combineStructures []string
	combineOp         string
)

var combineCmd = &cobra.Command{
	Use:   "combine <pattern-a> <pattern-b>",
	Short: "Print the boolean combination of two structure sets",
	Long: `Combines two structure selections with a set operation. Each side is
first folded into a single region by union; empty selections follow the
operation's empty-input rules (an empty side of a union yields the other
side, an empty side of an intersection yields nothing).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc, _, err := seedService(ctx, combineStructures)
		if err != nil {
			fatal("Failed to seed workspace", err)
		}

		a, err := selectAll(ctx, svc, args[:1])
		if err != nil {
			fatal("Failed to select structures", err)
		}
		b, err := selectAll(ctx, svc, args[1:])
		if err != nil {
			fatal("Failed to select structures", err)
		}

		var vol core.Volume
		switch combineOp {
		case "union":
			vol, err = svc.Union(ctx, a, b)
		case "intersect":
			vol, err = svc.Intersection(ctx, a, b)
		case "subtract":
			vol, err = svc.Subtraction(ctx, a, b)
		case "xor":
			vol, err = svc.NonOverlap(ctx, a, b)
		default:
			fatal("Unknown operation", fmt.Errorf("%q is not union, intersect, subtract or xor", combineOp))
		}
		if err != nil {
			fatal("Combine failed", err)
		}
		if vol == nil {
			fmt.Println("empty")
			return
		}
		fmt.Println(vol)
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().StringSliceVarP(&combineStructures, "structures", "s", nil, "Structure ids to seed the workspace with (append ! for high-res)")
	combineCmd.Flags().StringVar(&combineOp, "op", "union", "Set operation: union, intersect, subtract or xor")
}
