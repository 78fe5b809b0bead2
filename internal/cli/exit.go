package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/minicase/pkg/errors"
)

// ExitCancelled is the shell convention for SIGINT.
const ExitCancelled = 130

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return ExitCancelled
	default:
		return 1
	}
}

// ReportError writes err to w with its error code, if any.
func ReportError(w io.Writer, err error) {
	if stderrors.Is(err, context.Canceled) {
		fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render("Cancelled"))
		return
	}
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		msg += " " + StyleDim.Render("["+string(code)+"]")
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}
