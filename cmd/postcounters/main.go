package main

import (
	"os"

	"github.com/clear-ness/postcounters/cmd/postcounters/commands"
)

func main() {
	if err := commands.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
