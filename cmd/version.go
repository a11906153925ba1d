package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCMD = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "backlog-bot %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCMD)
}
