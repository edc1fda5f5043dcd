// Package console renders user-facing terminal output.
package console

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/parlo-cli/parlo/internal/chutes"
	"github.com/parlo-cli/parlo/internal/config"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	segmentStyle = lipgloss.NewStyle().Faint(true)
	timingStyle  = lipgloss.NewStyle().Faint(true)
)

// Console writes styled status and transcript output to one writer.
type Console struct {
	out io.Writer
}

// New constructs a console over out.
func New(out io.Writer) Console {
	return Console{out: out}
}

// Status prints a prefixed progress line.
func (c Console) Status(message string) {
	fmt.Fprintf(c.out, "%s %s\n", labelStyle.Render("parlo:"), message)
}

// Warnf prints a warning line.
func (c Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", warnStyle.Render("warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints an error line.
func (c Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", errorStyle.Render("error:"), fmt.Sprintf(format, args...))
}

// Transcript renders the transcription result with optional segment and
// timing detail.
func (c Console) Transcript(result chutes.Result, ui config.UIConfig, elapsed time.Duration) {
	fmt.Fprintln(c.out, successStyle.Render("Transcription completed!"))
	fmt.Fprintln(c.out, result.Text)

	if ui.ShowSegments && len(result.Segments) > 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, labelStyle.Render("Segments:"))
		for _, segment := range result.Segments {
			line := fmt.Sprintf("  [%6.2fs - %6.2fs] %s", segment.Start, segment.End, segment.Text)
			fmt.Fprintln(c.out, segmentStyle.Render(line))
		}
	}

	if ui.ShowTiming {
		fmt.Fprintln(c.out, timingStyle.Render(fmt.Sprintf("transcribed in %s", elapsed.Round(time.Millisecond))))
	}
}
