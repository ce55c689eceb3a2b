package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/tomasz-nowicki/rebo/internal/config"
)

var (
	replNoHistory   bool
	replHistoryFile string
	replPrompt      string
	replNoWelcome   bool
	replTrace       bool
)

var replCmd = &cobra.Command{
	Use:   "repl [-- ARGS...]",
	Short: "Start the interactive REPL",
	Long: heredoc.Doc(`
		Repl starts the interactive read-eval-print loop. Arguments after
		-- are exposed to the session as system.args, same as the bare
		"rebo -- ARGS..." invocation.
	`),
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		applyGlobalFlags(cfg)
		cfg.Args = args
		cfg.NoHistory = replNoHistory
		cfg.HistoryFile = replHistoryFile
		cfg.Prompt = replPrompt
		cfg.NoWelcome = replNoWelcome
		cfg.TraceOn = replTrace
		if err := finalizeConfig(cfg); err != nil {
			return err
		}
		exitWith(runREPLWithContext(cfg, newRuntimeContext()))
		return nil
	},
}

func init() {
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "disable command history")
	replCmd.Flags().StringVar(&replHistoryFile, "history-file", "", "history file location")
	replCmd.Flags().StringVar(&replPrompt, "prompt", "", "custom REPL prompt")
	replCmd.Flags().BoolVar(&replNoWelcome, "no-welcome", false, "skip the welcome message")
	replCmd.Flags().BoolVar(&replTrace, "trace", false, "start the REPL with tracing enabled")
	rootCmd.AddCommand(replCmd)
}
