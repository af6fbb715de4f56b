package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                 _             _   `, "#818cf8"},
	{`   ___  ___ _ __(_) __ _  ___ | |_ `, "#a78bfa"},
	{`  / _ \/ __| '_ \| |/ _` + "`" + ` |/ _ \| __|`, "#c084fc"},
	{` |  __/\__ \ |_) | | (_| | (_) | |_ `, "#e879f9"},
	{`  \___||___/ .__/|_|\__, |\___/ \__|`, "#f472b6"},
	{`           |_|      |___/           `, "#fb7185"},
}

// PrintBanner writes the espigot banner and version to w. Colors are only
// emitted when w is a color-capable terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  e, one digit at a time · v"+version).Faint())
	fmt.Fprintln(w)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
