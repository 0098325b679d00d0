package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"formulagen/internal/modules/formula"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List example task descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range formula.ExamplePrompts {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", p)
			}
			return nil
		},
	}
}
