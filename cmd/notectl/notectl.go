package main

import "github.com/kiosk404/echonote/internal/notectl/cmd"

func main() {
	cmd.Execute()
}
