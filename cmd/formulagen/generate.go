package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"formulagen/internal/modules/credential"
	"formulagen/internal/modules/formula"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "generate <task description>",
		Short:   "Generate a formula for a task",
		Example: `  formulagen generate "Sum values in column A if column B is 'Sales'"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return formula.ErrEmptyPrompt
			}

			store, err := credential.NewFileStore(opts.configDir)
			if err != nil {
				return err
			}
			svc := formula.NewService(formula.ServiceDeps{
				Provider:    newProvider(),
				Credentials: credential.NewService(store),
				Model:       opts.model,
				Temperature: float32(opts.cfg.AI.Temperature),
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			res, err := svc.Generate(ctx, cliUID, prompt)
			if err != nil {
				if kind, ok := formula.KindOf(err); ok && kind == formula.KindConfiguration {
					return fmt.Errorf("%w\nRun \"formulagen login <api-key>\" to save a key", err)
				}
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printResult(w io.Writer, res formula.Result) {
	fmt.Fprintf(w, "Formula:\n  %s\n\nExplanation:\n", res.Formula)
	for _, line := range res.Lines() {
		if line.Bullet {
			fmt.Fprintf(w, "    %s\n", strings.TrimSpace(line.Text))
			continue
		}
		fmt.Fprintf(w, "  %s\n", line.Text)
	}
}
