package main

import (
	"context"
	"fmt"

	"github.com/aretw0/playbox"
	"github.com/aretw0/playbox/internal/presentation/graph"
	"github.com/aretw0/playbox/pkg/fsm"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [scene]",
	Short: "Export the state hierarchy visualization",
	Long: `Builds the scene and outputs a Mermaid diagram (graph TD) of the state
hierarchy and its transitions. With --selection the initial selection and
the defaults are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd, args)
		if err != nil {
			return err
		}
		eng, err := playbox.New(path)
		if err != nil {
			return err
		}

		withSelection, _ := cmd.Flags().GetBool("selection")
		var output string
		if withSelection {
			eng.Awake(context.Background())
			output = eng.Graph()
		} else {
			eng.Do(func(tree *fsm.Tree) {
				output = graph.GenerateMermaid(tree, nil)
			})
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("selection", true, "Highlight the initial selection and defaults")
}
