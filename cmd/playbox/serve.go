package main

import (
	"github.com/aretw0/playbox/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [scene]",
	Short: "Play a scene in real time behind the debug HTTP server",
	Long: `Plays the scene at wall clock speed until interrupted, exposing the tree,
the Mermaid graph, lifecycle events (SSE), Prometheus metrics and a signal
endpoint over HTTP.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd, args)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		logLevel, _ := cmd.Flags().GetString("log-level")
		if logLevel == "" {
			logLevel = "info"
		}

		return cli.Execute(cmd.Context(), cli.RunOptions{
			ScenePath: path,
			Realtime:  true,
			DebugAddr: ":" + port,
			LogLevel:  logLevel,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
