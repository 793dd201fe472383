package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "playbox",
	Short: "PlayBox is a hierarchical state machine engine for scene graphs",
	Long: `PlayBox loads a scene (YAML or JSON), attaches states, effects and transitions
to its nodes and plays it with a fixed time step.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("scene", "s", "", "Scene file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); empty disables logging")
}

// scenePath reads --scene, falling back to the first positional argument.
func scenePath(cmd *cobra.Command, args []string) (string, error) {
	path, _ := cmd.Flags().GetString("scene")
	if !cmd.Flags().Changed("scene") && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", fmt.Errorf("no scene file given (use --scene or pass it as argument)")
	}
	return path, nil
}
