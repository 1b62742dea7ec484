package util

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

const DefaultErrorExitCode = 1

var fatalErrHandler = fatal

// BehaviorOnFatal replaces the exit behavior of CheckErr. Tests use it to
// capture the message instead of exiting.
func BehaviorOnFatal(f func(string, int)) {
	fatalErrHandler = f
}

// DefaultBehaviorOnFatal restores the exit behavior.
func DefaultBehaviorOnFatal() {
	fatalErrHandler = fatal
}

func fatal(msg string, code int) {
	if len(msg) > 0 {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
	}
	os.Exit(code)
}

// CheckErr prints a user friendly error and exits with a non-zero code.
// Interrupted commands exit quietly.
func CheckErr(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		fatalErrHandler("", 130)
		return
	}
	fatalErrHandler(color.RedString("error: ")+err.Error(), DefaultErrorExitCode)
}

// UsageErrorf is returned for bad arguments.
func UsageErrorf(cmdPath, format string, args ...any) error {
	return fmt.Errorf("%s\nSee '%s -h' for help and examples", fmt.Sprintf(format, args...), cmdPath)
}
