package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/tomasz-nowicki/rebo/internal/config"
)

var (
	evalStdin   bool
	evalNoPrint bool
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPRESSION",
	Short: "Evaluate an expression and print the result",
	Long: heredoc.Doc(`
		Eval parses and runs a single expression, printing its result
		unless --no-print is given. With --stdin, stdin is read first and
		prepended to EXPRESSION, letting it flow through a pipeline.
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		applyGlobalFlags(cfg)
		cfg.EvalExpr = args[0]
		cfg.ReadStdin = evalStdin
		cfg.NoPrint = evalNoPrint
		if err := finalizeConfig(cfg); err != nil {
			return err
		}
		exitWith(runExecutionWithContext(cfg, config.ModeEval, newRuntimeContext()))
		return nil
	},
}

func init() {
	evalCmd.Flags().BoolVar(&evalStdin, "stdin", false, "read additional input from stdin, prepended to the expression")
	evalCmd.Flags().BoolVar(&evalNoPrint, "no-print", false, "don't print the result of evaluation")
	rootCmd.AddCommand(evalCmd)
}
