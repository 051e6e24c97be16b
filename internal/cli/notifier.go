package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Notifier prints user-visible errors to a writer.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a notifier writing to out, usually os.Stderr.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// ShowError prints err in red.
func (n *Notifier) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(n.out, "%s %v\n", text.FgRed.Sprint("❌"), err)
}

// ShowSuccess prints msg in green.
func (n *Notifier) ShowSuccess(msg string) {
	fmt.Fprintln(n.out, FormatSuccess(msg))
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return text.FgGreen.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return text.FgYellow.Sprintf("⚠ %s", msg)
}

// WithSpinner runs fn while a spinner with suffix is shown on out. quiet
// runs fn without the spinner.
func WithSpinner(ctx context.Context, out io.Writer, quiet bool, suffix string, fn func(context.Context) error) error {
	if quiet {
		return fn(ctx)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	err := fn(ctx)
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("Failed: "+suffix) + "\n"
	}
	return err
}
