package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including timestamps.
	Verbose bool
}

// HandleError logs a StyleError to stderr.
func (h *LogHandler) HandleError(err *StyleError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[styling error] %s [%s]", err.Op, err.Kind)
		if err.Property != "" {
			fmt.Fprintf(os.Stderr, " property=%s", err.Property)
		}
		fmt.Fprintf(os.Stderr, ": %v (at %s)\n", err.Err, err.Timestamp.Format("15:04:05.000"))
	} else {
		fmt.Fprintf(os.Stderr, "[styling error] %s: %v\n", err.Op, err.Err)
	}
}
