package main

import (
	"github.com/aretw0/playbox/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Play a scene",
	Long: `Plays the scene with a fixed time step. Keys can be scripted (--keys "30:space")
or read from the terminal (--interactive). The tree is printed whenever the
selection changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd, args)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		opts := cli.RunOptions{ScenePath: path}
		opts.LogLevel, _ = flags.GetString("log-level")
		opts.Ticks, _ = flags.GetInt("ticks")
		opts.Step, _ = flags.GetDuration("dt")
		opts.Keys, _ = flags.GetString("keys")
		opts.Interactive, _ = flags.GetBool("interactive")
		opts.Realtime, _ = flags.GetBool("realtime")
		opts.Watch, _ = flags.GetBool("watch")
		opts.Quiet, _ = flags.GetBool("quiet")
		opts.ShowTree, _ = flags.GetBool("tree")
		opts.DebugAddr, _ = flags.GetString("debug-addr")
		opts.LegacyAwake, _ = flags.GetBool("legacy-awake")

		return cli.Execute(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("ticks", 600, "Number of ticks to play (0 = until interrupted)")
	runCmd.Flags().Duration("dt", 0, "Scene time per tick (default 1/60s)")
	runCmd.Flags().String("keys", "", `Scripted key presses, e.g. "30:space,90:w"`)
	runCmd.Flags().BoolP("interactive", "i", false, "Read keys from the terminal (implies --realtime)")
	runCmd.Flags().Bool("realtime", false, "Pace ticks with the wall clock")
	runCmd.Flags().BoolP("watch", "w", false, "Restart the scene whenever the file changes")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print errors")
	runCmd.Flags().Bool("tree", true, "Print the state tree when the selection changes")
	runCmd.Flags().String("debug-addr", "", "Serve /metrics, /events and /debug endpoints on this address")
	runCmd.Flags().Bool("legacy-awake", false, "Report initially selected states as not selected to on-awake effects")
}
