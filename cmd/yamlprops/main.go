package main

import (
	"os"

	"github.com/reoring/yamlprops/internal/commands"
)

func main() {
	if err := commands.Execute(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
