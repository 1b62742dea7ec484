package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/echonote/internal/notesd"
)

func main() {
	notesd.NewApp("notesd").Run()
}
