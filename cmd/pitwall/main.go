package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Analysis produced a result
	ExitNoViable = 1 // The engine ran but found no viable strategy
	ExitError    = 2 // Configuration or runtime error
)

// NoViableStrategyError indicates the engine ran to completion but the
// constraint filters rejected every candidate.
type NoViableStrategyError struct {
	Message string
}

func (e *NoViableStrategyError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var noViableErr *NoViableStrategyError
		if errors.As(err, &noViableErr) {
			os.Exit(ExitNoViable)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
