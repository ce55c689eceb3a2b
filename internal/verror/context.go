package verror

import (
	"strings"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// windowRadius controls how many neighbors on each side of the error index
// CaptureNear shows.
const windowRadius = 3

// CaptureNear renders the Near context: up to windowRadius cells before and
// after index, with the offending cell bracketed by >>> <<<.
func CaptureNear(vals []core.Value, index int) string {
	if len(vals) == 0 {
		return ""
	}
	start := index - windowRadius
	if start < 0 {
		start = 0
	}
	end := index + windowRadius + 1
	if end > len(vals) {
		end = len(vals)
	}

	var parts []string
	for i := start; i < end; i++ {
		s := vals[i].String()
		if i == index {
			s = ">>> " + s + " <<<"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// CaptureWhere renders a call-stack trace, most recent call first. callStack
// is supplied already ordered that way by the evaluator (internal/eval).
func CaptureWhere(callStack []string) []string {
	out := make([]string, len(callStack))
	copy(out, callStack)
	return out
}

// FormatErrorWithContext renders err the way the REPL shows an uncaught
// error to the user: its category/message header plus Near/Where context
// when present, mirroring (*Error).Error but without the trailing newline.
func FormatErrorWithContext(err *Error) string {
	return strings.TrimRight(err.Error(), "\n")
}
