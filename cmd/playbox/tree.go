package main

import (
	"context"

	"github.com/aretw0/playbox"
	"github.com/aretw0/playbox/internal/presentation/tui"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [scene]",
	Short: "Print the state tree with its initial selection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd, args)
		if err != nil {
			return err
		}
		eng, err := playbox.New(path)
		if err != nil {
			return err
		}
		eng.Awake(context.Background())

		out := cmd.OutOrStdout()
		renderer := tui.NewTreeRendererFor(out)
		eng.Do(func(tree *fsm.Tree) {
			err = renderer.Render(out, tree)
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
