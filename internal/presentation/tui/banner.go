package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the PlayBox banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct{ text, color string }{
		{"   ___  _           ___", "#818cf8"},
		{"  | _ \\| |__ _ _  _| _ ) _____ __", "#a78bfa"},
		{"  |  _/| / _` | || | _ \\/ _ \\ \\ /", "#c084fc"},
		{"  |_|  |_\\__,_|\\_, |___/\\___/_\\_\\", "#f472b6"},
		{"               |__/", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
