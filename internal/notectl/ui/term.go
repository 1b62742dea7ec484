package ui

import (
	"io"

	"github.com/moby/term"
)

const defaultWidth = 80

// Width is the column count of w when it is a terminal, 80 otherwise.
func Width(w io.Writer) int {
	fd, ok := term.GetFdInfo(w)
	if !ok {
		return defaultWidth
	}
	ws, err := term.GetWinsize(fd)
	if err != nil || ws.Width == 0 {
		return defaultWidth
	}
	return int(ws.Width)
}

func IsTerminal(v any) bool {
	_, ok := term.GetFdInfo(v)
	return ok
}
