package repl

import "github.com/fatih/color"

type palette struct {
	err    *color.Color
	win    *color.Color
	engine *color.Color
	query  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed),
		win:    color.New(color.FgGreen, color.Bold),
		engine: color.New(color.FgCyan),
		query:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.err, p.win, p.engine, p.query} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
