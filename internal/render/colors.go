package render

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Colorize reports whether output to writer should carry ANSI color for the
// given mode ("auto", "always", "never"). Auto requires a terminal.
func Colorize(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// paintStatus wraps text in the color conventionally tied to a job status.
// Unrecognized statuses stay uncolored.
func paintStatus(text, status string) string {
	var color string
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "downloading":
		color = ansiBlue
	case "queued", "pending":
		color = ansiYellow
	case "completed":
		color = ansiGreen
	case "failed", "error":
		color = ansiRed
	}
	if color == "" {
		return text
	}
	return color + text + ansiReset
}
