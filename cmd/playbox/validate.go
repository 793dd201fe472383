package main

import (
	"fmt"

	"github.com/aretw0/playbox/internal/validator"
	"github.com/aretw0/playbox/pkg/registry"
	"github.com/aretw0/playbox/pkg/scene"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scene]",
	Short: "Check the scene for consistency",
	Long: `Builds the scene and reports broken invariants, transitions whose destination
is not a sibling state, missing activate subjects, signals nobody listens to
and states that can never be selected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd, args)
		if err != nil {
			return err
		}

		reg := registry.New()
		registry.RegisterBuiltins(reg)
		sc, err := scene.NewBuilder(scene.WithRegistry(reg)).LoadFile(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		issues := validator.ValidateScene(sc)
		for _, issue := range issues {
			fmt.Fprintln(out, issue)
		}
		if err := validator.Err(issues); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(out, "Scene is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
