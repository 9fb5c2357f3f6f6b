package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the claimform banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   ___ _       _         __                     `, "#34d399"},
		{`  / __| |__ _ (_)_ __   / _|___ _ _ _ __        `, "#2dd4bf"},
		{` | (__| / _' || | '  \ |  _/ _ \ '_| '  \       `, "#22d3ee"},
		{`  \___|_\__,_||_|_|_|_||_| \___/_| |_|_|_|      `, "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status formats a one-line outcome, green when ok and red otherwise.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("✔ " + msg).Foreground(p.Color("#22c55e")).String()
	}
	return termenv.String("✘ " + msg).Foreground(p.Color("#ef4444")).Bold().String()
}
