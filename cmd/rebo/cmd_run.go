package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/tomasz-nowicki/rebo/internal/config"
)

var runProfile bool

var runCmd = &cobra.Command{
	Use:   "run FILE [ARGS...]",
	Short: "Execute a script file",
	Long: heredoc.Doc(`
		Run executes a .viro script file, exposing any trailing arguments
		to the script as system.args.
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		applyGlobalFlags(cfg)
		cfg.ScriptFile = args[0]
		cfg.Args = args[1:]
		cfg.Profile = runProfile
		if err := finalizeConfig(cfg); err != nil {
			return err
		}
		exitWith(runExecutionWithContext(cfg, config.ModeScript, newRuntimeContext()))
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runProfile, "profile", false, "enable profiling and show execution statistics")
	rootCmd.AddCommand(runCmd)
}
