package main

import (
	"chordtrainer/internal/cli"
	"chordtrainer/internal/ui/shell"
)

func main() {
	cli.Execute(cli.Options{RunGUI: shell.Run})
}
