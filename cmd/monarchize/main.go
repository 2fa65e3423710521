package main

import (
	"os"

	"github.com/monarchize-dev/monarchize/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
