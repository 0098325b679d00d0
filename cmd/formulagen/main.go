package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"formulagen/internal/ai"
	"formulagen/internal/config"
	"formulagen/internal/modules/credential"
)

// cliUID attributes CLI generations; the CLI has no gate or quota.
const cliUID = "cli"

// newProvider is replaced in tests.
var newProvider = func() ai.Provider { return ai.NewGeminiProvider() }

type options struct {
	configDir string
	model     string
	timeout   time.Duration
	cfg       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "formulagen",
		Short: "formulagen turns a task description into a spreadsheet formula.",
		Long: `Describe what you want a spreadsheet to do and get back an Excel or
Google Sheets formula with a step-by-step explanation, generated by Gemini.

Store your Gemini API key once with "formulagen login <key>".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if opts.model == "" {
				opts.model = cfg.AI.Model
			}
			if opts.timeout <= 0 {
				opts.timeout = cfg.AI.Timeout
			}
			if opts.configDir == "" {
				dir, err := credential.DefaultConfigDir()
				if err != nil {
					return err
				}
				opts.configDir = dir
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Directory holding config.yaml (default ~/.config/formulagen)")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "Gemini model to use (default from FORMULAGEN_AI_MODEL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Timeout for one generation (default from FORMULAGEN_AI_TIMEOUT)")

	root.AddCommand(newLoginCmd(opts), newGenerateCmd(opts), newExamplesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formulagen: %s\n", err)
		os.Exit(1)
	}
}
