package main

// getHelpText returns the long-form usage text. No command renders it; each
// cobra command carries its own Short/Long text. Env var names keep their VIRO_
// prefix — they're part of the language runtime's configuration surface,
// not the renamed rebo binary.
func getHelpText() string {
	return `Rebo - A homoiconic programming language

USAGE:
    rebo [OPTIONS] run FILE [ARGS...]
    rebo [OPTIONS] -- [ARGS...]
    rebo eval EXPRESSION
    rebo check FILE
    rebo version

MODES:
    (default)           Start interactive REPL
    run FILE [ARGS...]  Execute script file with arguments
    -- [ARGS...]        Start REPL with arguments in system.args
    eval EXPRESSION     Evaluate expression and print result
    check FILE          Check syntax without executing

GLOBAL OPTIONS:
    --sandbox-root PATH        Sandbox root for file operations (default: current directory)
    --allow-insecure-tls       Disable TLS certificate verification (warning: security risk)
    --quiet                    Suppress non-error output
    --verbose                  Enable verbose output

RUN OPTIONS:
    --profile                  Enable profiling and show execution statistics

EVAL OPTIONS:
    --stdin                    Read additional input from stdin
    --no-print                 Don't print result of evaluation

REPL OPTIONS:
    --no-history               Disable command history
    --history-file PATH        History file location
    --prompt STRING            Custom REPL prompt
    --no-welcome               Skip welcome message
    --trace                    Start REPL with tracing enabled

ENVIRONMENT VARIABLES:
    VIRO_SANDBOX_ROOT          Default sandbox root directory
    VIRO_ALLOW_INSECURE_TLS    Allow insecure TLS (set to "1" or "true")
    VIRO_HISTORY_FILE          REPL history file location

EXIT CODES:
    0     Success
    1     General error (script/math error)
    2     Syntax error (parse failure)
    3     Access error (permission denied, sandbox violation)
    64    Usage error (invalid CLI arguments)
    70    Internal error (interpreter crash)
    130   Interrupted (Ctrl+C)

EXAMPLES:
    # Start REPL
    rebo

    # Start REPL with arguments
    rebo -- arg1 arg2 arg3

    # Execute script with arguments
    rebo run script.viro arg1 arg2

    # Check syntax
    rebo check script.viro

    # Evaluate expression
    rebo eval "3 + 4"

    # Use in pipeline
    echo "[1 2 3]" | rebo eval "first" --stdin

    # Suppress output
    rebo eval "pow 2 10" --no-print

    # Profile script execution
    rebo run --profile script.viro

For more information, visit: https://github.com/tomasz-nowicki/rebo
`
}
