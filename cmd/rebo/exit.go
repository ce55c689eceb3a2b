package main

import (
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitSyntax    = 2
	ExitAccess    = 3
	ExitUsage     = 64
	ExitInternal  = 70
	ExitInterrupt = 130
)

func categoryToExitCode(cat verror.ErrorCategory) int {
	switch cat {
	case verror.ErrSyntax:
		return ExitSyntax
	case verror.ErrAccess:
		return ExitAccess
	case verror.ErrInternal:
		return ExitInternal
	default:
		return ExitError
	}
}
