package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of espigot",
	Run: func(cmd *cobra.Command, args []string) {
		if showBanner() {
			tui.PrintBanner(cmd.OutOrStdout(), espigot.VersionString())
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "espigot version %s\n", espigot.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
