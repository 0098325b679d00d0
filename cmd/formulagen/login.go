package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"formulagen/internal/modules/credential"
)

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <api-key>",
		Short: "Save your Gemini API key",
		Long:  "Save your Gemini API key to the local config file. It replaces any previously saved key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credential.NewFileStore(opts.configDir)
			if err != nil {
				return err
			}
			if err := credential.NewService(store).Save(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return nil
		},
	}
}
