package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/tomasz-nowicki/rebo/internal/api"
	"github.com/tomasz-nowicki/rebo/internal/config"
)

// Global flags shared by every subcommand, matching the sandbox/TLS knobs
// the teacher CLI exposed as top-level flags.
var (
	sandboxRoot      string
	allowInsecureTLS bool
	quiet            bool
	verbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "rebo",
	Short: "Rebo — a homoiconic, REBOL-family scripting language",
	Long: heredoc.Doc(`
		Rebo is a homoiconic interpreter for a REBOL-family dialect.

		Run with no subcommand to start the interactive REPL. Use a
		subcommand (run, eval, check) to execute scripts non-interactively.
	`),
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		applyGlobalFlags(cfg)
		cfg.Args = args
		if err := finalizeConfig(cfg); err != nil {
			return err
		}
		exitWith(runREPLWithContext(cfg, newRuntimeContext()))
		return nil
	},
}

// exitWith terminates the process with the given code. Subcommand RunE
// handlers call this instead of returning an error so a successful run
// still reports the interpreter's own exit status (ExitSyntax, ExitAccess,
// ...) rather than always exiting 0.
func exitWith(code int) {
	os.Exit(code)
}

func applyGlobalFlags(cfg *config.Config) {
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if sandboxRoot != "" {
		cfg.SandboxRoot = sandboxRoot
	}
	cfg.AllowInsecureTLS = cfg.AllowInsecureTLS || allowInsecureTLS
	cfg.Quiet = quiet
	cfg.Verbose = verbose
}

func newRuntimeContext() *api.RuntimeContext {
	return &api.RuntimeContext{
		Args:   os.Args[1:],
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func init() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%lvl%] %time% - %msg%\n",
	})

	rootCmd.PersistentFlags().StringVar(&sandboxRoot, "sandbox-root", "", "sandbox root directory for file operations (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&allowInsecureTLS, "allow-insecure-tls", false, "allow insecure TLS connections globally (disables certificate verification)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.Version = getVersionString()
}

// Execute runs the root command; cmd/rebo's only export for tests that want
// to drive the whole CLI rather than a single subcommand's handler.
func Execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}
}
