package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxtools/carve"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of carve",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("carve version %s\n", strings.TrimSpace(carve.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
