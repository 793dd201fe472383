package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/playbox"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of playbox",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "playbox version %s\n", strings.TrimSpace(playbox.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
