package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/tomasz-nowicki/rebo/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check a script's syntax without executing it",
	Long: heredoc.Doc(`
		Check parses FILE and reports whether it's syntactically valid,
		without evaluating any of it.
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		applyGlobalFlags(cfg)
		cfg.CheckOnly = true
		cfg.ScriptFile = args[0]
		if err := finalizeConfig(cfg); err != nil {
			return err
		}
		exitWith(runExecutionWithContext(cfg, config.ModeCheck, newRuntimeContext()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
